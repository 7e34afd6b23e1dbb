package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/visagelab/facesym/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithNamespace("facesym_test"),
			metrics.WithSubsystem("core"),
			metrics.WithPrometheusRegistry(registry),
		)

		Convey("Then construction should register all collectors without panicking", func() {
			So(m, ShouldNotBeNil)

			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Counters without observations are not exported yet, but
			// gauges and histograms are.
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording across every metric family", func() {
			Convey("Then none of the recorders should panic", func() {
				So(func() {
					metrics.RecordAssessmentCompleted()
					metrics.RecordAssessmentError()
					metrics.RecordNormalizationError()
					metrics.RecordProviderLatency(12.5)
					metrics.RecordRecommendationServed(false)
					metrics.RecordRecommendationServed(true)
					metrics.RecordCredentialCacheHit()
					metrics.RecordCredentialIssued()
					metrics.RecordCredentialFetchError()
					metrics.RecordPlanGenerated()
					metrics.RecordRoutineCompleted()
					metrics.RecordCompletionReplay()
					metrics.RecordCompletionNotFound()
					metrics.RecordRepositoryLatency("plan_put", 1.2)
					metrics.RecordRepositoryError()
					metrics.RecordHTTPRequest("plans", "POST", "200")
					metrics.RecordHTTPRequestDuration("plans", "POST", "200", 3.4)
					metrics.RecordErrorByType("not_found", "medium")
					metrics.RecordErrorByEndpoint("plans", "PATCH", "not_found")
					metrics.RecordErrorLatency("http", "not_found", 0.8)
					metrics.UpdateSystemMemoryUsage(1 << 20)
					metrics.UpdateSystemGoroutineCount(8)
					metrics.RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering from the global registry", func() {
			families, err := metrics.GetRegistry().Gather()

			Convey("Then the recorded families should be present", func() {
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["facesym_core_assessments_completed_total"], ShouldBeTrue)
				So(names["facesym_core_plans_generated_total"], ShouldBeTrue)
				So(names["facesym_core_credential_issued_total"], ShouldBeTrue)
				So(names["facesym_core_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
