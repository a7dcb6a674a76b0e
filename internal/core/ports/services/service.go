package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Seat        SeatSvcFacade
	Booking     BookingSvcFacade
	AutoBooking AutoBookingSvcFacade
	Session     SessionSvcFacade
	Reporting   ReportingService
	Audit       AuditSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
}
