package observability

const (
	MUsecaseRequests     MetricKey = "usecase_requests_total"
	MUsecaseDuration     MetricKey = "usecase_duration_seconds"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
	MStaleResultsDropped MetricKey = "build_stale_results_dropped_total"
	MDispatchSubmissions MetricKey = "dispatch_submissions_total"
)
