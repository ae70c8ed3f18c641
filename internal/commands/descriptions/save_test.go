package descriptionscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-holidays/descriptions"
	"github.com/goliatone/go-holidays/internal/commands"
)

type stubDescriptionService struct {
	saveRequests []descriptions.SaveRequest
	saveErr      error
}

func (s *stubDescriptionService) Resolve(context.Context, string, string, string) (descriptions.Resolution, error) {
	return descriptions.Resolution{}, errors.New("not implemented")
}

func (s *stubDescriptionService) Exists(context.Context, string, string, string) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *stubDescriptionService) Save(_ context.Context, req descriptions.SaveRequest) (*descriptions.Record, error) {
	s.saveRequests = append(s.saveRequests, req)
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return &descriptions.Record{HolidayName: req.HolidayName}, nil
}

func (s *stubDescriptionService) List(context.Context, descriptions.ListFilter) ([]*descriptions.Record, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *stubDescriptionService) Stats() descriptions.Stats {
	return descriptions.Stats{}
}

func validSave() SaveDescriptionCommand {
	return SaveDescriptionCommand{
		HolidayName: "Carnival",
		CountryName: "AD",
		Locale:      "ko",
		Description: "카니발 축제",
		IsManual:    true,
		ModifiedBy:  "curator@example.com",
	}
}

func TestSaveDescriptionHandlerExecutesService(t *testing.T) {
	service := &stubDescriptionService{}
	logger := commands.CommandLogger(nil, "descriptions")
	handler := NewSaveDescriptionHandler(service, logger)

	if err := handler.Execute(context.Background(), validSave()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(service.saveRequests) != 1 {
		t.Fatalf("expected one save, got %d", len(service.saveRequests))
	}
	req := service.saveRequests[0]
	if req.HolidayName != "Carnival" || req.ModifiedBy != "curator@example.com" || !req.IsManual {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestSaveDescriptionCommandValidation(t *testing.T) {
	handler := NewSaveDescriptionHandler(&stubDescriptionService{}, nil)

	msg := validSave()
	msg.Description = ""
	err := handler.Execute(context.Background(), msg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	msg = validSave()
	msg.Confidence = 1.5
	if err := handler.Execute(context.Background(), msg); err == nil {
		t.Fatal("expected confidence validation error")
	}
}

func TestSaveDescriptionHandlerWrapsServiceError(t *testing.T) {
	service := &stubDescriptionService{saveErr: errors.New("boom")}
	handler := NewSaveDescriptionHandler(service, nil)

	err := handler.Execute(context.Background(), validSave())
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
