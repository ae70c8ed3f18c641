// Package descriptionscmd exposes the description write paths as validated
// command messages so hosts can route curation through a dispatcher.
package descriptionscmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-holidays/descriptions"
	"github.com/goliatone/go-holidays/internal/commands"
	"github.com/goliatone/go-holidays/pkg/interfaces"
)

const saveDescriptionMessageType = "holidays.descriptions.save"

// SaveDescriptionCommand requests a create-or-overwrite of one description.
type SaveDescriptionCommand struct {
	HolidayName string     `json:"holiday_name"`
	CountryName string     `json:"country_name"`
	Locale      string     `json:"locale"`
	Description string     `json:"description"`
	Confidence  float64    `json:"confidence"`
	IsManual    bool       `json:"is_manual"`
	HolidayDate *time.Time `json:"holiday_date,omitempty"`
	ModifiedBy  string     `json:"modified_by,omitempty"`
}

// Type implements command.Message.
func (SaveDescriptionCommand) Type() string { return saveDescriptionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SaveDescriptionCommand) Validate() error {
	errs := validation.Errors{}
	if m.HolidayName == "" {
		errs["holiday_name"] = validation.NewError("holidays.descriptions.save.holiday_name_required", "holiday_name is required")
	}
	if m.CountryName == "" {
		errs["country_name"] = validation.NewError("holidays.descriptions.save.country_name_required", "country_name is required")
	}
	if m.Locale == "" {
		errs["locale"] = validation.NewError("holidays.descriptions.save.locale_required", "locale is required")
	}
	if m.Description == "" {
		errs["description"] = validation.NewError("holidays.descriptions.save.description_required", "description is required")
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		errs["confidence"] = validation.NewError("holidays.descriptions.save.confidence_invalid", "confidence must be between 0 and 1")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveDescriptionHandler persists descriptions via the resolver's write path
// using the shared command handler foundation.
type SaveDescriptionHandler struct {
	inner *commands.Handler[SaveDescriptionCommand]
}

// NewSaveDescriptionHandler constructs a handler wired to the provided description service.
func NewSaveDescriptionHandler(service descriptions.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveDescriptionCommand]) *SaveDescriptionHandler {
	exec := func(ctx context.Context, msg SaveDescriptionCommand) error {
		_, err := service.Save(ctx, descriptions.SaveRequest{
			HolidayName: msg.HolidayName,
			CountryName: msg.CountryName,
			Locale:      msg.Locale,
			Description: msg.Description,
			Confidence:  msg.Confidence,
			IsManual:    msg.IsManual,
			HolidayDate: msg.HolidayDate,
			ModifiedBy:  msg.ModifiedBy,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveDescriptionCommand]{
		commands.WithLogger[SaveDescriptionCommand](logger),
		commands.WithOperation[SaveDescriptionCommand]("descriptions.save"),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveDescriptionCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveDescriptionHandler{
		inner: commands.NewHandler[SaveDescriptionCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveDescriptionCommand].Execute.
func (h *SaveDescriptionHandler) Execute(ctx context.Context, msg SaveDescriptionCommand) error {
	return h.inner.Execute(ctx, msg)
}
