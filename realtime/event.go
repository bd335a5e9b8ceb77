package realtime

import (
	"encoding/json"

	"debate-arena/domain"
)

// ContributionEvent is the payload broadcast after each accepted
// contribution. It carries enough state for clients to render the message and
// the turn indicator without refetching the session.
type ContributionEvent struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	Seq         uint64 `json:"seq"`
	SenderID    string `json:"sender_id"`
	Sender      string `json:"sender"`
	Content     string `json:"content"`
	Lang        string `json:"lang,omitempty"`
	Chat        bool   `json:"chat"`
	Round       int    `json:"round"`
	NextSpeaker string `json:"next_speaker"`
}

// NewContributionEvent builds the broadcast payload from a ledger entry and
// the session snapshot taken right after the turn transition.
func NewContributionEvent(contribution domain.Contribution, after domain.Session) ContributionEvent {
	sender := string(contribution.SenderID)
	for _, p := range after.Participants {
		if p.ID == contribution.SenderID {
			sender = p.Username
			break
		}
	}
	return ContributionEvent{
		Type:        "contribution",
		SessionID:   string(contribution.SessionID),
		Seq:         contribution.Seq,
		SenderID:    string(contribution.SenderID),
		Sender:      sender,
		Content:     contribution.Content,
		Lang:        contribution.Lang,
		Chat:        contribution.Chat,
		Round:       after.Round,
		NextSpeaker: after.CurrentSpeaker().Username,
	}
}

func (e ContributionEvent) Encode() []byte {
	payload, _ := json.Marshal(e)
	return payload
}
