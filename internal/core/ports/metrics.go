package ports

// WebhookMetrics counts processed payment gateway events.
type WebhookMetrics interface {
	// ObserveWebhook records one event of eventType finishing with outcome.
	ObserveWebhook(eventType, outcome string)
}

