package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
)

// Spanish user-facing messages, matching the studio's client app.
var businessMessages = map[string]string{
	"slot_not_found":            "Horario no encontrado.",
	"slot_inactive":             "Este horario ya no está disponible.",
	"slot_not_offered_on_date":  "Este horario no se ofrece en la fecha elegida.",
	"slot_full":                 "No hay plazas disponibles para esta fecha y horario.",
	"duplicate_booking":         "Ya tienes una reserva para esta fecha y horario.",
	"insufficient_credits":      "No tienes créditos suficientes para reservar.",
	"date_in_past":              "La fecha ya ha pasado.",
	"invalid_date":              "Fecha inválida.",
	"invalid_month":             "Mes inválido.",
	"invalid_selected_date":     "Fecha seleccionada inválida.",
	"booking_not_found":         "Reserva no encontrada.",
	"invalid_state":             "La reserva no admite esta operación.",
	"cancellation_window_closed": "Ya no es posible cancelar esta reserva.",
	"invalid_booking_time":      "Horario de la reserva inválido.",
	"user_not_found":            "Usuario no encontrado.",
	"payment_request_not_found": "Solicitud no encontrada.",
	"request_already_processed": "La solicitud ya fue procesada.",
	"profile_not_found":         "Perfil no encontrado.",
}

var businessStatus = map[string]int{
	"slot_full":                 409,
	"duplicate_booking":         409,
	"request_already_processed": 409,
	"slot_not_found":            404,
	"booking_not_found":         404,
	"user_not_found":            404,
	"payment_request_not_found": 404,
	"profile_not_found":         404,
}

// writeBusinessError maps a use-case error to an HTTP response. Unknown
// errors become a generic 500 with no internals leaked.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Ha ocurrido un error inesperado.")
		return
	}

	status := businessStatus[code]
	if status == 0 {
		status = 400
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = "Operación no permitida."
	}

	httperr.Write(c, status, code, msg)
}
