package repository

import (
	"context"
	"database/sql"
	"time"

	"hotel-management/internal/model"
)

// ChatRepo persists chat messages and the service requests raised from
// them. The message/request pair is written in a single transaction so
// that a service request can never exist without its parent message.
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo returns a new ChatRepo bound to the given database.
func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{db: db} }

const chatColumns = `id, sender_id, sender_role, receiver_id, receiver_role, body, type, status, created_at`

// History returns up to limit messages where the identity is sender or
// receiver, newest first.
func (r *ChatRepo) History(ctx context.Context, id uint64, role string, limit int) ([]model.ChatMessage, error) {
	const q = `SELECT ` + chatColumns + ` FROM chat_messages
	           WHERE (sender_id = ? AND sender_role = ?)
	              OR (receiver_id = ? AND receiver_role = ?)
	           ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, id, role, id, role, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ChatMessage, 0, limit)
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderRole, &m.ReceiverID, &m.ReceiverRole,
			&m.Body, &m.Type, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateMessage inserts a single chat message and populates its id and
// creation timestamp.
func (r *ChatRepo) CreateMessage(ctx context.Context, m *model.ChatMessage) error {
	const q = `INSERT INTO chat_messages (sender_id, sender_role, receiver_id, receiver_role, body, type, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.SenderID, m.SenderRole, m.ReceiverID, m.ReceiverRole, m.Body, m.Type, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}

// CreateServiceRequest inserts the chat message and its linked service
// request as one atomic unit. Either both rows exist afterwards or
// neither does. Each call runs on its own transaction handle drawn from
// the pool, so concurrent calls never interleave commits.
func (r *ChatRepo) CreateServiceRequest(ctx context.Context, m *model.ChatMessage, sr *model.ChatServiceRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const msgQ = `INSERT INTO chat_messages (sender_id, sender_role, receiver_id, receiver_role, body, type, status)
	              VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, msgQ, m.SenderID, m.SenderRole, m.ReceiverID, m.ReceiverRole, m.Body, m.Type, m.Status)
	if err != nil {
		return err
	}
	msgID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(msgID)

	const reqQ = `INSERT INTO chat_service_requests (message_id, service_type, status, notes)
	              VALUES (?, ?, ?, ?)`
	res, err = tx.ExecContext(ctx, reqQ, m.ID, sr.ServiceType, sr.Status, sr.Notes)
	if err != nil {
		return err
	}
	reqID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sr.ID = uint64(reqID)
	sr.MessageID = m.ID

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}

// UpdateRequestStatus moves a chat-linked service request to a new
// status. ErrNotFound when no such request exists.
func (r *ChatRepo) UpdateRequestStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE chat_service_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRequests returns chat-linked service requests, newest first,
// optionally filtered by status.
func (r *ChatRepo) ListRequests(ctx context.Context, status string) ([]model.ChatServiceRequest, error) {
	q := `SELECT id, message_id, service_type, status, notes, created_at FROM chat_service_requests`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ChatServiceRequest, 0)
	for rows.Next() {
		var sr model.ChatServiceRequest
		var notes sql.NullString
		if err := rows.Scan(&sr.ID, &sr.MessageID, &sr.ServiceType, &sr.Status, &notes, &sr.CreatedAt); err != nil {
			return nil, err
		}
		if notes.Valid {
			v := notes.String
			sr.Notes = &v
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}
