package contracts

// Exchanges
const (
	ExchangeAdminTopic    = "admin_topic"    // operator action events published by the dashboard
	ExchangePlatformTopic = "platform_topic" // platform activity consumed to refresh the live feed
)

// Queues
const (
	QueueAdminActions     = "admin_actions"           // platform-side consumers of operator actions
	QueuePlatformActivity = "admin_platform_activity" // dashboard-side live feed refresh triggers
)

// Routing patterns
const (
	RouteApplicationApproved = "admin.application.approved"
	RoutePaymentAccepted     = "admin.payment.accepted"
	RouteFareUpdated         = "admin.fare.updated"
	RouteAdminActionPrefix   = "admin."    // binding pattern: admin.#
	RoutePlatformPrefix      = "platform." // binding pattern: platform.#
)
