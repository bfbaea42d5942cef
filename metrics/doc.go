// Package metrics exposes Prometheus collectors for recommendation
// requests, feedback ratings, advice retrieval and failures.
//
// Register the collectors once and hand the result to the service:
//
//	m, err := metrics.New(prometheus.NewRegistry())
//	svc, err := db.NewService(ctx, praxis.WithMetrics(m))
//
// Metric names:
//
//   - recommendation_requests_total{input_type, match_found}
//   - recommendation_latency_seconds
//   - feedback_rating_total{rating}
//   - rag_retrieved_documents_count
//   - api_errors_total{error_type}
//   - recommendation_skipped_practices_total
package metrics
