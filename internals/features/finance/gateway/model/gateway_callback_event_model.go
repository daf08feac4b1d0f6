// file: internals/features/finance/gateway/model/gateway_callback_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL — gateway_callback_events

   Raw webhook log. Every callback body is stored before any
   state change so replays and disputes can be audited.
========================================================= */

type GatewayCallbackEvent struct {
	GatewayCallbackEventID uuid.UUID `gorm:"column:gateway_callback_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_callback_event_id"`

	GatewayCallbackEventProvider  PaymentProvider `gorm:"column:gateway_callback_event_provider;type:varchar(20);not null" json:"gateway_callback_event_provider"`
	GatewayCallbackEventReference string          `gorm:"column:gateway_callback_event_reference;type:varchar(120);not null;index" json:"gateway_callback_event_reference"`

	// raw provider status string, before mapping
	GatewayCallbackEventStatus string `gorm:"column:gateway_callback_event_status;type:varchar(40);not null" json:"gateway_callback_event_status"`

	GatewayCallbackEventPayload datatypes.JSON `gorm:"column:gateway_callback_event_payload;type:jsonb" json:"gateway_callback_event_payload,omitempty"`

	// outcome of processing this event (applied, ignored, error text)
	GatewayCallbackEventOutcome string `gorm:"column:gateway_callback_event_outcome;type:varchar(200);not null;default:''" json:"gateway_callback_event_outcome"`

	GatewayCallbackEventReceivedAt time.Time `gorm:"column:gateway_callback_event_received_at;not null;default:now();index" json:"gateway_callback_event_received_at"`
}

func (GatewayCallbackEvent) TableName() string { return "gateway_callback_events" }

func (m *GatewayCallbackEvent) BeforeCreate(tx *gorm.DB) error {
	if m.GatewayCallbackEventReceivedAt.IsZero() {
		m.GatewayCallbackEventReceivedAt = time.Now()
	}
	return nil
}
