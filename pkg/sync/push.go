package sync

import (
	"fmt"
	"log"

	"github.com/thndrbrrr/gtasks-org-tools/pkg/org"
	"google.golang.org/api/tasks/v1"
)

// TagResult is the outcome of pushing one tag: the resolved tasklist
// and the created records in insertion order. Err is set when the tag
// failed partway; records inserted before the failure remain both in
// Created and on the remote service, since no rollback is performed.
type TagResult struct {
	TasklistID string
	Created    []*tasks.Task
	Err        error
}

// PushTags converts tagged org entries into remote tasks, one tasklist
// per tag, creating the tasklist when it does not exist. A tag with no
// matching entries gets no map entry and triggers no tasklist lookup.
// Tags are processed independently: one tag's failure is recorded in
// its TagResult and the remaining tags still run.
func (s *Syncer) PushTags(tags []string) map[string]*TagResult {
	results := make(map[string]*TagResult)
	today := s.now()

	for _, tag := range tags {
		entries, err := s.Source.EntriesByTag(tag, today)
		if err != nil {
			log.Printf("selecting entries for tag %s: %v", tag, err)
			results[tag] = &TagResult{Err: err}
			continue
		}
		if len(entries) == 0 {
			continue
		}

		listID, err := s.EnsureTasklist(tag)
		if err != nil {
			log.Printf("resolving tasklist for tag %s: %v", tag, err)
			results[tag] = &TagResult{Err: err}
			continue
		}

		res := &TagResult{TasklistID: listID}
		results[tag] = res
		for _, e := range entries {
			created, err := s.Remote.InsertTask(listID, org.EntryToTask(e))
			if err != nil {
				// A failed insert aborts this tag's remaining
				// inserts; already-inserted records stay.
				res.Err = fmt.Errorf("inserting %q: %w", e.Title, err)
				log.Printf("push tag %s: %v", tag, res.Err)
				break
			}
			res.Created = append(res.Created, created)
		}
	}

	return results
}
