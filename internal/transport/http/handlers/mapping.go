package handlers

import (
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
)

func mapDecision(d model.Decision) dto.DecisionResponse {
	return dto.DecisionResponse{
		ID:         d.ID,
		UserID:     d.UserID,
		TargetID:   d.TargetID,
		TargetType: string(d.TargetType),
		Direction:  string(d.Direction),
		CreatedAt:  d.CreatedAt,
	}
}

func mapConnection(c model.Connection, viewerID string) dto.ConnectionResponse {
	return dto.ConnectionResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		ConnectedUserID: c.ConnectedUserID,
		OtherUserID:     c.Other(viewerID),
		CreatedAt:       c.CreatedAt,
	}
}

func mapConnectionView(v connsvc.ConnectionView) dto.ConnectionResponse {
	resp := mapConnection(v.Connection, "")
	resp.OtherUserID = v.OtherUserID
	return resp
}

func mapBlock(b model.Block) dto.BlockResponse {
	return dto.BlockResponse{
		ID:            b.ID,
		BlockerID:     b.BlockerID,
		BlockedUserID: b.BlockedUserID,
		CreatedAt:     b.CreatedAt,
	}
}

func mapReport(r model.Report) dto.ReportItemResponse {
	return dto.ReportItemResponse{
		ID:                r.ID,
		ReporterID:        r.ReporterID,
		ReportedUserID:    r.ReportedUserID,
		Reason:            string(r.Reason),
		ReasonLabel:       r.Reason.Label(),
		AdditionalDetails: r.AdditionalDetails,
		CreatedAt:         r.CreatedAt,
	}
}

func mapEvent(e model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		Tags:        nonNilTags(e.Tags),
		Recommended: e.Recommended,
		OrganizerID: e.OrganizerID,
	}
}

func mapEvents(events []model.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, mapEvent(e))
	}
	return out
}

func mapAttendee(a model.Attendee) dto.AttendeeResponse {
	return dto.AttendeeResponse{
		ID:          a.ID,
		Name:        a.Name,
		Role:        a.Role,
		Bio:         a.Bio,
		Tags:        nonNilTags(a.Tags),
		Recommended: a.Recommended,
	}
}

func mapItem(item model.SwipeableItem) dto.DiscoverItemResponse {
	resp := dto.DiscoverItemResponse{Type: string(item.Type), ID: item.ID()}
	if item.Event != nil {
		event := mapEvent(*item.Event)
		resp.Event = &event
	}
	if item.Attendee != nil {
		attendee := mapAttendee(*item.Attendee)
		resp.Attendee = &attendee
	}
	return resp
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
