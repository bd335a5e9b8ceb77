// Package search maintains a full-text index over debate contributions so
// transcripts can be searched across sessions.
package search

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"

	"debate-arena/domain"
)

// Hit is one contribution matched by a search.
type Hit struct {
	SessionID string  `json:"session_id"`
	Sender    string  `json:"sender"`
	Content   string  `json:"content"`
	Seq       uint64  `json:"seq"`
	Score     float64 `json:"score"`
}

// Index wraps a bluge writer. Indexing is best-effort: a failed index write
// is logged and never fails the contribution that triggered it.
type Index struct {
	log    *slog.Logger
	writer *bluge.Writer
}

func NewIndex(log *slog.Logger, writer *bluge.Writer) *Index {
	return &Index{log: log, writer: writer}
}

// Add indexes one contribution, keyed by its uuid.
func (i *Index) Add(contribution domain.Contribution) {
	doc := bluge.NewDocument(contribution.ID.String()).
		AddField(bluge.NewTextField("content", contribution.Content).StoreValue()).
		AddField(bluge.NewKeywordField("session_id", string(contribution.SessionID)).StoreValue()).
		AddField(bluge.NewKeywordField("sender", string(contribution.SenderID)).StoreValue()).
		AddField(bluge.NewKeywordField("seq", strconv.FormatUint(contribution.Seq, 10)).StoreValue())

	if err := i.writer.Update(doc.ID(), doc); err != nil {
		i.log.Warn("contribution indexing failed",
			"session_id", contribution.SessionID,
			"seq", contribution.Seq,
			"err", err,
		)
	}
}

// Search returns the best matches for the terms, optionally restricted to
// one session.
func (i *Index) Search(ctx context.Context, terms string, sessionID domain.SessionID, limit int) ([]Hit, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("content"))
	if sessionID != "" {
		query.AddMust(bluge.NewTermQuery(string(sessionID)).SetField("session_id"))
	}

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []Hit
	match, err := iterator.Next()
	for err == nil && match != nil {
		hit := Hit{Score: match.Score}
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "content":
				hit.Content = string(value)
			case "session_id":
				hit.SessionID = string(value)
			case "sender":
				hit.Sender = string(value)
			case "seq":
				hit.Seq, _ = strconv.ParseUint(string(value), 10, 64)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}
