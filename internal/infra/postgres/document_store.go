package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gpr-quiz-bot/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DocumentStore persists type-tagged JSONB records in a single schemaless
// table, mirroring the document store the bot grew up with. It implements
// app.RoundRepository and app.GuessRepository.
type DocumentStore struct {
	pool *pgxpool.Pool
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// roundDoc is the persisted shape of a round record.
type roundDoc struct {
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	DurationDays int    `json:"duration_days"`
}

// guessDoc is the persisted shape of a guess record. The correctness fields
// are absent until a review commits marking.
type guessDoc struct {
	GuesserID         int64  `json:"guesser_id"`
	GuesserName       string `json:"guesser_name"`
	GuessText         string `json:"guess_text"`
	Timestamp         int64  `json:"timestamp"`
	ArtistNameCorrect *bool  `json:"artist_name_correct,omitempty"`
	SongTitleCorrect  *bool  `json:"song_title_correct,omitempty"`
}

func (s *DocumentStore) ListRounds(ctx context.Context) ([]domain.Round, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM records WHERE doc_type='round' ORDER BY data->>'start_date'`)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []domain.Round
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		var doc roundDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal round: %w", err)
		}
		start, err := time.ParseInLocation("2006-01-02", doc.StartDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse round start date: %w", err)
		}
		rounds = append(rounds, domain.Round{
			Name:         doc.Name,
			StartDate:    start,
			DurationDays: doc.DurationDays,
		})
	}
	return rounds, rows.Err()
}

func (s *DocumentStore) InsertRound(ctx context.Context, round domain.Round) error {
	data, err := json.Marshal(roundDoc{
		Name:         round.Name,
		StartDate:    round.StartDate.Format("2006-01-02"),
		DurationDays: round.DurationDays,
	})
	if err != nil {
		return fmt.Errorf("marshal round: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO records (id, doc_type, data) VALUES ($1, 'round', $2)`,
		uuid.NewString(), data)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (s *DocumentStore) InsertGuess(ctx context.Context, guess domain.Guess) error {
	data, err := json.Marshal(guessDoc{
		GuesserID:         guess.GuesserID,
		GuesserName:       guess.GuesserName,
		GuessText:         guess.GuessText,
		Timestamp:         guess.Timestamp.Unix(),
		ArtistNameCorrect: markToPtr(guess.ArtistNameCorrect),
		SongTitleCorrect:  markToPtr(guess.SongTitleCorrect),
	})
	if err != nil {
		return fmt.Errorf("marshal guess: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO records (id, doc_type, data) VALUES ($1, 'guess', $2)`,
		guess.ID, data)
	if err != nil {
		return fmt.Errorf("insert guess: %w", err)
	}
	return nil
}

func (s *DocumentStore) GuessesBetween(ctx context.Context, start, end time.Time) ([]domain.Guess, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM records
		 WHERE doc_type='guess'
		   AND (data->>'timestamp')::bigint >= $1
		   AND (data->>'timestamp')::bigint < $2
		 ORDER BY (data->>'timestamp')::bigint`,
		start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("list guesses: %w", err)
	}
	defer rows.Close()

	var guesses []domain.Guess
	for rows.Next() {
		guess, err := scanGuess(rows.Scan)
		if err != nil {
			return nil, err
		}
		guesses = append(guesses, guess)
	}
	return guesses, rows.Err()
}

func (s *DocumentStore) GuessForUserBetween(ctx context.Context, guesserID int64, start, end time.Time) (domain.Guess, bool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM records
		 WHERE doc_type='guess'
		   AND (data->>'guesser_id')::bigint = $1
		   AND (data->>'timestamp')::bigint >= $2
		   AND (data->>'timestamp')::bigint < $3
		 LIMIT 1`,
		guesserID, start.Unix(), end.Unix())
	if err != nil {
		return domain.Guess{}, false, fmt.Errorf("find guess: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Guess{}, false, rows.Err()
	}
	guess, err := scanGuess(rows.Scan)
	if err != nil {
		return domain.Guess{}, false, err
	}
	return guess, true, nil
}

func (s *DocumentStore) UpdateMarking(ctx context.Context, guessID string, artist, title domain.Mark) error {
	patch := map[string]any{}
	if p := markToPtr(artist); p != nil {
		patch["artist_name_correct"] = *p
	}
	if p := markToPtr(title); p != nil {
		patch["song_title_correct"] = *p
	}
	if len(patch) == 0 {
		return nil
	}
	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal marking: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE records SET data = data || $2::jsonb WHERE id = $1 AND doc_type='guess'`,
		guessID, data)
	if err != nil {
		return fmt.Errorf("update marking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGuessNotFound
	}
	return nil
}

func scanGuess(scan func(dest ...interface{}) error) (domain.Guess, error) {
	var id string
	var raw []byte
	if err := scan(&id, &raw); err != nil {
		return domain.Guess{}, fmt.Errorf("scan guess: %w", err)
	}
	var doc guessDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Guess{}, fmt.Errorf("unmarshal guess: %w", err)
	}
	return domain.Guess{
		ID:                id,
		GuesserID:         doc.GuesserID,
		GuesserName:       doc.GuesserName,
		GuessText:         doc.GuessText,
		ArtistNameCorrect: markFromPtr(doc.ArtistNameCorrect),
		SongTitleCorrect:  markFromPtr(doc.SongTitleCorrect),
		Timestamp:         time.Unix(doc.Timestamp, 0),
	}, nil
}

func markToPtr(m domain.Mark) *bool {
	switch m {
	case domain.MarkCorrect:
		v := true
		return &v
	case domain.MarkIncorrect:
		v := false
		return &v
	default:
		return nil
	}
}

func markFromPtr(p *bool) domain.Mark {
	if p == nil {
		return domain.Unmarked
	}
	return domain.MarkOf(*p)
}
