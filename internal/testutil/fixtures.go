// Package testutil holds deterministic clocks and card fixtures shared by
// the package tests.
package testutil

import "github.com/arnau/data-standards-authority/internal/card"

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// Standard returns a minimal valid standard with the given related list.
func Standard(id string, related ...string) card.Standard {
	return card.Standard{
		ID:            id,
		Name:          id,
		Topic:         "exchange",
		Specification: "https://spec.example/" + id,
		Maintainer:    "data-standards-authority",
		Related:       related,
		EndorsementState: card.EndorsementState{
			Status:     card.EndorsementIdentified,
			StartDate:  card.NewDate(2021, 6, 1),
			ReviewDate: card.NewDate(2021, 6, 1),
		},
		Content: "# " + id,
	}
}

// Vapour is the standard used throughout the reconciliation scenarios. It
// relates to Steam.
func Vapour() card.Standard {
	return card.Standard{
		ID:            "vapour",
		Name:          "Vapour",
		Topic:         "exchange",
		Specification: "https://spec.vapour.org/",
		Licence:       StrPtr("ogl"),
		Maintainer:    "data-standards-authority",
		Related:       []string{"steam"},
		EndorsementState: card.EndorsementState{
			Status:     card.EndorsementIdentified,
			StartDate:  card.NewDate(2021, 6, 1),
			ReviewDate: card.NewDate(2021, 6, 1),
		},
		Content: "# Vapour\n\nThis standard will give you no overhead.",
	}
}

// Steam is the standard Vapour points at.
func Steam() card.Standard {
	s := Vapour()
	s.ID = "steam"
	s.Name = "Steam"
	s.Related = []string{}
	s.Content = "# Steam"
	return s
}
