package domain

import "time"

// ClaimThresholdPercent is the share of the goal that must be funded before
// the creator may claim the accumulated donations.
const ClaimThresholdPercent = 80.0

// Project is a single crowdfunding campaign stored in the projects collection.
// The document id is assigned by Firestore and kept out of the stored fields.
type Project struct {
	ID           string     `firestore:"-" json:"id"`
	ProjectID    string     `firestore:"projectId" json:"projectId"`
	Creator      string     `firestore:"creator" json:"creator"`
	Goal         float64    `firestore:"goal" json:"goal"`
	Description  string     `firestore:"description" json:"description"`
	ImageBase64  string     `firestore:"imageBase64,omitempty" json:"imageBase64,omitempty"`
	DonationsXLM float64    `firestore:"donationsXLM" json:"donationsXLM"`
	Claimed      bool       `firestore:"claimed" json:"claimed"`
	ClaimedAt    *time.Time `firestore:"claimedAt,omitempty" json:"claimedAt,omitempty"`
	ClaimedBy    string     `firestore:"claimedBy,omitempty" json:"claimedBy,omitempty"`
	Deadline     time.Time  `firestore:"deadline" json:"deadline"`
	CreatedAt    time.Time  `firestore:"createdAt" json:"createdAt"`
}

// Progress returns the funded share of the goal as a percentage.
// Donations are never capped at the goal, so this can exceed 100.
func (p *Project) Progress() float64 {
	if p.Goal <= 0 {
		return 0
	}
	return p.DonationsXLM / p.Goal * 100
}

// ClaimableBy checks the claim eligibility conditions in order and returns
// the first failing one: caller must be the creator, progress must have
// reached the threshold, and the funds must not have been claimed before.
func (p *Project) ClaimableBy(wallet string) error {
	if p.Creator != wallet {
		return ErrNotCreator
	}
	if p.Progress() < ClaimThresholdPercent {
		return ErrGoalNotReached
	}
	if p.Claimed {
		return ErrAlreadyClaimed
	}
	return nil
}
