/*
Package conversation builds the per-caller list of correspondents.

There is no persisted "conversation" record. The list is reconstructed on every query by
merging two independent sources: counterparties found in the message log, and the explicit
trainer/client assignment. Either source alone is incomplete — history keeps a thread
visible after an assignment changes, and the assignment lets a freshly paired user and
trainer start chatting with zero prior messages.
*/
package conversation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"fitchat/internal/app/actor"
	"fitchat/internal/app/message"
	"fitchat/internal/pkg/logx"
)

// Entry is one correspondent in a caller's conversation list. Derived fresh on
// every query, never cached or written back.
type Entry struct {
	Actor     actor.Ref `json:"actor"`
	Name      string    `json:"displayName"`
	Email     string    `json:"displayEmail"`
	KindLabel string    `json:"kindLabel"`
	AvatarKey string    `json:"avatarKey,omitempty"`
}

// Aggregator merges message history with the trainer/client roster.
type Aggregator struct {
	store  message.Store
	dir    actor.Directory
	roster Roster
	logger zerolog.Logger
}

// NewAggregator returns an Aggregator over the given ports.
func NewAggregator(store message.Store, dir actor.Directory, roster Roster) *Aggregator {
	return &Aggregator{
		store:  store,
		dir:    dir,
		roster: roster,
		logger: logx.Logger().With().Str("component", "Aggregator").Logger(),
	}
}

// List assembles the caller's deduplicated correspondent list:
//
//  1. Collect the distinct ids of every counterparty in the message log.
//  2. Resolve those ids against both directories, tagging each match with its actual kind.
//  3. Append the roster side: a trainer's assigned clients, or a user's assigned trainer.
//  4. Deduplicate by id, first occurrence wins.
//
// A roster lookup failure degrades to a partial result built from history alone; the
// two sources are independent and one failing should not blank the whole list.
func (a *Aggregator) List(ctx context.Context, caller actor.Ref) ([]Entry, error) {
	ids, err := a.store.CorrespondentIDs(ctx, caller)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids)+1)

	if len(ids) > 0 {
		users, err := a.dir.UsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		trainers, err := a.dir.TrainersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		for _, u := range users {
			entries = append(entries, entryFromSummary(u))
		}
		for _, t := range trainers {
			entries = append(entries, entryFromSummary(t))
		}
	}

	entries = append(entries, a.rosterEntries(ctx, caller)...)

	// Dedup is keyed by the bare id, not (kind, id): ids are UUIDs from a single
	// namespace, so the two kinds cannot collide in practice.
	return lo.UniqBy(entries, func(e Entry) string { return e.Actor.ID }), nil
}

// rosterEntries fetches the assignment side of the merge. Failures are logged
// and swallowed so the caller still gets the history half.
func (a *Aggregator) rosterEntries(ctx context.Context, caller actor.Ref) []Entry {
	switch caller.Kind {
	case actor.KindTrainer:
		clients, err := a.roster.ClientsOf(ctx, caller.ID)
		if err != nil {
			a.logger.Warn().Err(err).Str("trainer_id", caller.ID).
				Msg("Roster lookup failed. Returning partial conversation list.")
			return nil
		}

		entries := make([]Entry, 0, len(clients))
		for _, c := range clients {
			entries = append(entries, entryFromSummary(c))
		}
		return entries

	case actor.KindUser:
		trainer, err := a.roster.TrainerOf(ctx, caller.ID)
		if err != nil {
			a.logger.Warn().Err(err).Str("user_id", caller.ID).
				Msg("Roster lookup failed. Returning partial conversation list.")
			return nil
		}
		if trainer == nil {
			return nil
		}
		return []Entry{entryFromSummary(*trainer)}

	default:
		return nil
	}
}

func entryFromSummary(s actor.Summary) Entry {
	return Entry{
		Actor:     s.Ref(),
		Name:      s.Name,
		Email:     s.Email,
		KindLabel: s.Kind.Label(),
		AvatarKey: s.AvatarKey,
	}
}
