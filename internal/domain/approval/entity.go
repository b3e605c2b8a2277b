package approval

import (
	"errors"
	"strings"
	"time"

	"approval-service/internal/domain/wallet"

	"github.com/google/uuid"
)

var (
	ErrInvalidChangeType    = errors.New("invalid change type")
	ErrMissingTitle         = errors.New("title is required")
	ErrMissingDescription   = errors.New("description is required")
	ErrMissingEntity        = errors.New("affected entity is required")
	ErrEntityKindMismatch   = errors.New("affected entity does not match change type")
	ErrNotPending           = errors.New("request is not pending")
	ErrNotDecided           = errors.New("request is not decided")
	ErrEmptyDecisionComment = errors.New("rejection requires a comment")
	ErrEmptyComment         = errors.New("comment text is required")
)

// Comment is an append-only audit annotation. Comments never gate state.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Author    uuid.UUID `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Seed is everything the submitter supplies; the derived fields (impact,
// sensitivity, routing, wallet snapshot) are computed by the usecase layer
// and frozen into the request at creation.
type Seed struct {
	Type          ChangeType
	Title         string
	Description   string
	SubmittedBy   uuid.UUID
	SubmitterRole string
	Entity        AffectedEntity
}

// Request is the central aggregate. Status transitions exactly once,
// pending -> approved|rejected, and never reverses. Everything else is frozen
// at creation except decision fields and appended comments.
type Request struct {
	id                uuid.UUID
	changeType        ChangeType
	title             string
	description       string
	submittedBy       uuid.UUID
	submitterRole     string
	submittedAt       time.Time
	entity            AffectedEntity
	impact            BusinessImpact
	sensitivity       Sensitivity
	requiredApprovers []ApproverRole
	walletImpact      *wallet.Impact

	status           Status
	decidedBy        *uuid.UUID
	decidedAt        *time.Time
	decisionComments string
	walletAdjustment *wallet.Adjustment
	bulkActionID     *uuid.UUID
	comments         []Comment
}

func NewRequest(
	seed Seed,
	impact BusinessImpact,
	sensitivity Sensitivity,
	requiredApprovers []ApproverRole,
	walletImpact *wallet.Impact,
	now time.Time,
) (*Request, error) {
	if !seed.Type.IsValid() {
		return nil, ErrInvalidChangeType
	}
	if strings.TrimSpace(seed.Title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(seed.Description) == "" {
		return nil, ErrMissingDescription
	}
	if seed.Entity == nil {
		return nil, ErrMissingEntity
	}
	if seed.Entity.Kind() != seed.Type {
		return nil, ErrEntityKindMismatch
	}

	// V7 ids are time-ordered, which keeps submission order recoverable even
	// under concurrent submitters.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	return &Request{
		id:                id,
		changeType:        seed.Type,
		title:             strings.TrimSpace(seed.Title),
		description:       strings.TrimSpace(seed.Description),
		submittedBy:       seed.SubmittedBy,
		submitterRole:     seed.SubmitterRole,
		submittedAt:       now,
		entity:            seed.Entity,
		impact:            impact,
		sensitivity:       sensitivity,
		requiredApprovers: requiredApprovers,
		walletImpact:      walletImpact,
		status:            StatusPending,
	}, nil
}

// Record is the flat persisted form of a Request, used by stores to
// reconstruct the aggregate without bypassing its invariants elsewhere.
type Record struct {
	ID                uuid.UUID
	Type              ChangeType
	Title             string
	Description       string
	SubmittedBy       uuid.UUID
	SubmitterRole     string
	SubmittedAt       time.Time
	Entity            AffectedEntity
	Impact            BusinessImpact
	Sensitivity       Sensitivity
	RequiredApprovers []ApproverRole
	WalletImpact      *wallet.Impact
	Status            Status
	DecidedBy         *uuid.UUID
	DecidedAt         *time.Time
	DecisionComments  string
	WalletAdjustment  *wallet.Adjustment
	BulkActionID      *uuid.UUID
	Comments          []Comment
}

func ReconstructRequest(rec Record) *Request {
	return &Request{
		id:                rec.ID,
		changeType:        rec.Type,
		title:             rec.Title,
		description:       rec.Description,
		submittedBy:       rec.SubmittedBy,
		submitterRole:     rec.SubmitterRole,
		submittedAt:       rec.SubmittedAt,
		entity:            rec.Entity,
		impact:            rec.Impact,
		sensitivity:       rec.Sensitivity,
		requiredApprovers: rec.RequiredApprovers,
		walletImpact:      rec.WalletImpact,
		status:            rec.Status,
		decidedBy:         rec.DecidedBy,
		decidedAt:         rec.DecidedAt,
		decisionComments:  rec.DecisionComments,
		walletAdjustment:  rec.WalletAdjustment,
		bulkActionID:      rec.BulkActionID,
		comments:          rec.Comments,
	}
}

// ToRecord flattens the aggregate for persistence. Slices are copied so the
// record can outlive subsequent mutations.
func (r *Request) ToRecord() Record {
	comments := make([]Comment, len(r.comments))
	copy(comments, r.comments)
	approvers := make([]ApproverRole, len(r.requiredApprovers))
	copy(approvers, r.requiredApprovers)

	return Record{
		ID:                r.id,
		Type:              r.changeType,
		Title:             r.title,
		Description:       r.description,
		SubmittedBy:       r.submittedBy,
		SubmitterRole:     r.submitterRole,
		SubmittedAt:       r.submittedAt,
		Entity:            r.entity,
		Impact:            r.impact,
		Sensitivity:       r.sensitivity,
		RequiredApprovers: approvers,
		WalletImpact:      r.walletImpact,
		Status:            r.status,
		DecidedBy:         r.decidedBy,
		DecidedAt:         r.decidedAt,
		DecisionComments:  r.decisionComments,
		WalletAdjustment:  r.walletAdjustment,
		BulkActionID:      r.bulkActionID,
		Comments:          comments,
	}
}

// Approve transitions pending -> approved. The adjustment is nil when the
// request carried no hold; that is a legitimate outcome, not an error.
func (r *Request) Approve(actor uuid.UUID, comments string, now time.Time, adjustment *wallet.Adjustment) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusApproved
	r.decidedBy = &actor
	r.decidedAt = &now
	r.decisionComments = strings.TrimSpace(comments)
	r.walletAdjustment = adjustment
	return nil
}

// Reject transitions pending -> rejected. A reason is mandatory; approval has
// no such requirement.
func (r *Request) Reject(actor uuid.UUID, comments string, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if strings.TrimSpace(comments) == "" {
		return ErrEmptyDecisionComment
	}
	r.status = StatusRejected
	r.decidedBy = &actor
	r.decidedAt = &now
	r.decisionComments = strings.TrimSpace(comments)
	return nil
}

// TagBulkAction groups a decided request under the batch that resolved it.
func (r *Request) TagBulkAction(bulkActionID uuid.UUID) error {
	if !r.status.IsTerminal() {
		return ErrNotDecided
	}
	r.bulkActionID = &bulkActionID
	return nil
}

// AddComment appends an annotation. Decided requests still accept comments
// for audit purposes; the comment never affects state.
func (r *Request) AddComment(author uuid.UUID, text string, now time.Time) (Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Comment{}, ErrEmptyComment
	}
	c := Comment{
		ID:        uuid.New(),
		Author:    author,
		Text:      trimmed,
		CreatedAt: now,
	}
	r.comments = append(r.comments, c)
	return c, nil
}

func (r *Request) IsPending() bool { return r.status == StatusPending }

func (r *Request) ID() uuid.UUID                        { return r.id }
func (r *Request) Type() ChangeType                     { return r.changeType }
func (r *Request) Title() string                        { return r.title }
func (r *Request) Description() string                  { return r.description }
func (r *Request) SubmittedBy() uuid.UUID               { return r.submittedBy }
func (r *Request) SubmitterRole() string                { return r.submitterRole }
func (r *Request) SubmittedAt() time.Time               { return r.submittedAt }
func (r *Request) Entity() AffectedEntity               { return r.entity }
func (r *Request) Impact() BusinessImpact               { return r.impact }
func (r *Request) Sensitivity() Sensitivity             { return r.sensitivity }
func (r *Request) RequiredApprovers() []ApproverRole    { return r.requiredApprovers }
func (r *Request) WalletImpact() *wallet.Impact         { return r.walletImpact }
func (r *Request) Status() Status                       { return r.status }
func (r *Request) DecidedBy() *uuid.UUID                { return r.decidedBy }
func (r *Request) DecidedAt() *time.Time                { return r.decidedAt }
func (r *Request) DecisionComments() string             { return r.decisionComments }
func (r *Request) WalletAdjustment() *wallet.Adjustment { return r.walletAdjustment }
func (r *Request) BulkActionID() *uuid.UUID             { return r.bulkActionID }
func (r *Request) Comments() []Comment                  { return r.comments }

// RequiresHold reports whether this request must carry an open hold while
// pending.
func (r *Request) RequiresHold() bool {
	return r.walletImpact != nil && r.walletImpact.RequiresHold
}
