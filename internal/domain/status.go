package domain

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of a product submission.
type Status int

const (
	StatusDeclined  Status = 0
	StatusPending   Status = 1
	StatusConfirmed Status = 2
	StatusRejected  Status = 3
)

func (s Status) Valid() bool {
	return s >= StatusDeclined && s <= StatusRejected
}

func (s Status) String() string {
	switch s {
	case StatusDeclined:
		return "declined"
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusRejected:
		return "rejected"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Decision is a staff verdict on a pending product.
type Decision string

const (
	DecisionConfirm Decision = "confirm"
	DecisionReject  Decision = "reject"
)

// ParseDecision accepts the two form tokens, case-insensitively.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(strings.ToLower(strings.TrimSpace(s))) {
	case DecisionConfirm:
		return DecisionConfirm, true
	case DecisionReject:
		return DecisionReject, true
	}
	return "", false
}

func (d Decision) Status() Status {
	if d == DecisionConfirm {
		return StatusConfirmed
	}
	return StatusRejected
}

// Outcome is the past-tense word used in notifications.
func (d Decision) Outcome() string {
	if d == DecisionConfirm {
		return "Approved"
	}
	return "Rejected"
}

// Bucket is one of the three display groups on the dashboard tiles.
type Bucket string

const (
	BucketPublished   Bucket = "published"
	BucketForApproval Bucket = "for_approval"
	BucketDeclined    Bucket = "declined"
)

func ParseBucket(s string) (Bucket, bool) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketPublished, BucketForApproval, BucketDeclined:
		return b, true
	}
	return "", false
}

// BucketMap folds the four statuses into display buckets.
// Rejected has no natural home and goes wherever the deployment says.
type BucketMap struct {
	Rejected Bucket
}

func DefaultBucketMap() BucketMap { return BucketMap{Rejected: BucketDeclined} }

func (m BucketMap) For(s Status) (Bucket, bool) {
	switch s {
	case StatusConfirmed:
		return BucketPublished, true
	case StatusPending:
		return BucketForApproval, true
	case StatusDeclined:
		return BucketDeclined, true
	case StatusRejected:
		if m.Rejected == "" {
			return BucketDeclined, true
		}
		return m.Rejected, true
	}
	return "", false
}

// StatusCounts holds the three dashboard tiles.
type StatusCounts struct {
	Published   int `json:"published"`
	ForApproval int `json:"for_approval"`
	Declined    int `json:"declined"`
}

func (c *StatusCounts) Add(b Bucket, n int) {
	switch b {
	case BucketPublished:
		c.Published += n
	case BucketForApproval:
		c.ForApproval += n
	case BucketDeclined:
		c.Declined += n
	}
}

func (c StatusCounts) Total() int { return c.Published + c.ForApproval + c.Declined }
