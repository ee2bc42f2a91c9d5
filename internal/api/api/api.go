package api

import (
	"eventdash/cmd/middleware"
	"eventdash/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.POST("/events/:uuid/select", r.Service.SelectEvent)
	apiGroup.GET("/events/:uuid", r.Service.ViewEvent)
	apiGroup.PUT("/events/:uuid", r.Service.UpdateEvent)
	apiGroup.POST("/events/:uuid/image", r.Service.UploadEventImage)
	apiGroup.DELETE("/events/:uuid", r.Service.DeleteEvent)
	apiGroup.GET("/events/:uuid/live", r.Service.LiveStatus)

	apiGroup.GET("/events/:uuid/attendees", r.Service.ListAttendees)
	apiGroup.GET("/attendees/:attendee_uuid/edit", r.Service.AttendeeEditForm)
	apiGroup.PUT("/attendees/:attendee_uuid", r.Service.UpdateAttendee)

	apiGroup.GET("/events/:uuid/agendas", r.Service.ListAgendas)
	apiGroup.POST("/agendas/:agenda_uuid/select", r.Service.SelectAgenda)
	apiGroup.GET("/agendas/:agenda_uuid/edit", r.Service.AgendaEditForm)
	apiGroup.PUT("/agendas/:agenda_uuid", r.Service.UpdateAgenda)
	apiGroup.DELETE("/agendas/:agenda_uuid", r.Service.DeleteAgenda)
	apiGroup.POST("/events/:uuid/agendas/import", r.Service.ImportAgendas)

	apiGroup.GET("/events/:uuid/pending-requests", r.Service.ListPendingRequests)
	apiGroup.POST("/events/:uuid/pending-requests/approve", r.Service.ApprovePendingRequest)
	apiGroup.POST("/events/:uuid/pending-requests/discard", r.Service.DiscardPendingRequest)

	apiGroup.POST("/events/:uuid/reminders", r.Service.SendReminder)
	apiGroup.GET("/events/:uuid/whatsapp-report", r.Service.WhatsAppReport)

	// Selection-pointer routes: views reached from a card click, without the
	// uuid in the path.
	apiGroup.GET("/event", r.Service.ViewEvent)
	apiGroup.GET("/event/attendees", r.Service.ListAttendees)
	apiGroup.GET("/event/agendas", r.Service.ListAgendas)
	apiGroup.GET("/event/pending-requests", r.Service.ListPendingRequests)
	apiGroup.GET("/event/live", r.Service.LiveStatus)
	apiGroup.GET("/agenda/edit", r.Service.AgendaEditForm)
	apiGroup.PUT("/agenda", r.Service.UpdateAgenda)
	apiGroup.DELETE("/agenda", r.Service.DeleteAgenda)

	return app
}
