package dto

import (
	"time"

	"council.app/council/internal/model"
)

type SubmitRequest struct {
	Topic          string   `json:"topic" binding:"max=8192"`
	ParticipantIDs []string `json:"participant_ids" binding:"required"`
}

type FollowUpRequest struct {
	Text string `json:"text" binding:"required,max=4096"`
}

type IntelRequest struct {
	Text string `json:"text" binding:"required,max=4096"`
}

type MessageResponse struct {
	ID          string             `json:"id"`
	AgentID     string             `json:"agent_id"`
	Content     string             `json:"content"`
	Timestamp   time.Time          `json:"timestamp"`
	Rating      *int               `json:"rating,omitempty"`
	NeuralState *model.NeuralState `json:"neural_state,omitempty"`
	Artifacts   []model.Artifact   `json:"artifacts,omitempty"`
}

type SessionResponse struct {
	Topic         string               `json:"topic"`
	Status        model.Status         `json:"status"`
	Messages      []MessageResponse    `json:"messages"`
	Consensus     string               `json:"consensus,omitempty"`
	ErrorMessage  string               `json:"error_message,omitempty"`
	ActiveSpeaker string               `json:"active_speaker,omitempty"`
	Attachments   []AttachmentBrief    `json:"attachments,omitempty"`
	Visuals       []string             `json:"visuals,omitempty"`
	Insights      *model.InsightReport `json:"insights,omitempty"`
}

type AttachmentBrief struct {
	Name          string `json:"name"`
	PreviewHandle string `json:"preview_handle"`
	MediaType     string `json:"media_type"`
}

func ToSessionResponse(s model.Session, activeSpeaker string) SessionResponse {
	resp := SessionResponse{
		Topic:         s.Topic,
		Status:        s.Status,
		Messages:      make([]MessageResponse, len(s.Messages)),
		Consensus:     s.Consensus,
		ErrorMessage:  s.ErrorMessage,
		ActiveSpeaker: activeSpeaker,
		Visuals:       s.Visuals,
		Insights:      s.Insights,
	}
	for i, m := range s.Messages {
		resp.Messages[i] = MessageResponse{
			ID:          m.ID,
			AgentID:     m.AgentID,
			Content:     m.Content,
			Timestamp:   m.Timestamp,
			Rating:      m.Rating,
			NeuralState: m.NeuralState,
			Artifacts:   m.Artifacts,
		}
	}
	for _, att := range s.Attachments {
		// The raw payload stays server-side; clients get the handle.
		resp.Attachments = append(resp.Attachments, AttachmentBrief{
			Name:          att.Name,
			PreviewHandle: att.PreviewHandle,
			MediaType:     att.MediaType,
		})
	}
	return resp
}
