package routes

import (
	"github.com/go-chi/chi/v5"

	"lifewithchrist/community/internal/api"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, jobsHandler *api.JobsHandler, deps *api.Dependencies) {

	// Public auth and subscription routes, rate limited per source IP
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Use(middleware.RateLimitMiddleware)

		public.Post("/auth/signup", handlers.SignUpHandler())
		public.Post("/auth/signin", handlers.SignInHandler())
		public.Post("/auth/signout", handlers.SignOutHandler())
		public.Get("/auth/session", handlers.SessionHandler())

		public.Post("/devotionals/subscribe", handlers.SubscribeDevotionalsHandler())
		public.Get("/devotionals/unsubscribe", handlers.UnsubscribeDevotionalsHandler())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(deps.Services.Identity, deps.Services.Account)) // global: all routes must carry a valid session

		// A pending account can see and edit its own profile, nothing else
		v1.Get("/me", handlers.MeHandler())
		v1.Patch("/me", handlers.UpdateProfileHandler())

		// Approved members group
		v1.Group(func(member chi.Router) {
			member.Use(middleware.RequireApprovedMiddleware())

			member.Get("/posts", handlers.ListPostsHandler())
			member.Post("/posts", handlers.CreatePostHandler())
			member.Get("/posts/{postID}", handlers.GetPostHandler())
			member.Post("/posts/{postID}/reactions", handlers.ReactToPostHandler())
			member.Post("/posts/{postID}/comments", handlers.AddCommentHandler())

			member.Get("/groups", handlers.ListGroupsHandler())
			member.Get("/groups/{groupID}", handlers.GetGroupHandler())
			member.Post("/groups/{groupID}/join", handlers.JoinGroupHandler())
			member.Post("/groups/{groupID}/leave", handlers.LeaveGroupHandler())

			member.Get("/events", handlers.ListEventsHandler())
			member.Get("/events/{eventID}", handlers.GetEventHandler())
			member.Post("/events/{eventID}/rsvp", handlers.RSVPHandler())

			member.Get("/prayers", handlers.ListPrayersHandler())
			member.Post("/prayers", handlers.CreatePrayerHandler())
			member.Post("/prayers/{prayerID}/respond", handlers.RespondToPrayerHandler())
			member.Patch("/prayers/{prayerID}/status", handlers.UpdatePrayerStatusHandler())

			member.Get("/devotionals", handlers.ListDevotionalsHandler())
			member.Get("/devotionals/today", handlers.TodaysDevotionalHandler())
			member.Get("/devotionals/{devotionalID}", handlers.GetDevotionalHandler())
			member.Post("/devotionals/{devotionalID}/reactions", handlers.ReactToDevotionalHandler())

			member.Get("/notifications", handlers.ListNotificationsHandler())
			member.Get("/notifications/stream", handlers.StreamNotificationsHandler())
			member.Post("/notifications/{notificationID}/read", handlers.MarkNotificationReadHandler())
			member.Post("/notifications/read-all", handlers.MarkAllNotificationsReadHandler())

			// Leader group (leaders + admins)
			member.Group(func(leader chi.Router) {
				leader.Use(middleware.IsLeaderMiddleware())

				leader.Post("/groups", handlers.CreateGroupHandler())
				leader.Post("/events", handlers.CreateEventHandler())
				leader.Post("/events/{eventID}/meeting", handlers.ProvisionMeetingHandler())
				leader.Post("/devotionals", handlers.CreateDevotionalHandler())

				// Admin-only group
				leader.Group(func(admin chi.Router) {
					admin.Use(middleware.IsAdminMiddleware())

					admin.Get("/admin/members/pending", handlers.PendingMembersHandler())
					admin.Patch("/admin/members/{userID}/status", handlers.SetMemberStatusHandler())
					admin.Patch("/admin/members/{userID}/role", handlers.SetMemberRoleHandler())
					admin.Patch("/admin/posts/{postID}/status", handlers.ModeratePostHandler())
					admin.Get("/admin/dashboard", handlers.DashboardHandler())

					// Background jobs management
					admin.Post("/admin/jobs/devotional-digest", jobsHandler.TriggerDevotionalDigest())
				})
			})
		})
	})
}
