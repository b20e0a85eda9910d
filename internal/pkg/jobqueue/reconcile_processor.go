package jobqueue

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/slotpress/slotpress/app/repository"
)

// processReconcilePlacementsJob flags active placements whose slot key no
// longer matches any registered slot as orphaned, and clears the flag again
// when a matching slot reappears. Placement keys are plain strings, so a slot
// rename silently detaches its placements; this job is what surfaces that.
func (q *Queue) processReconcilePlacementsJob(ctx context.Context, job *Job) error {
	payload, err := ReconcilePlacementsJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid reconcile payload: %w", err)
	}

	repos := repository.GetGlobalRepositories()

	slugs, err := repos.Slot.ListSlugs()
	if err != nil {
		return fmt.Errorf("list slot slugs: %w", err)
	}
	known := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		known[s] = struct{}{}
	}

	keys, err := repos.Placement.ListActiveSlotKeys()
	if err != nil {
		return fmt.Errorf("list placement slot keys: %w", err)
	}

	orphanedCount := 0
	restoredCount := 0
	for _, key := range keys {
		if payload.SlotKey != "" && key != payload.SlotKey {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		placements, err := repos.Placement.GetBySlotKey(key)
		if err != nil {
			return fmt.Errorf("load placements for %q: %w", key, err)
		}

		_, registered := known[key]
		var toFlag, toRestore []uint64
		for _, p := range placements {
			if !registered && !p.Orphaned {
				toFlag = append(toFlag, p.ID)
			}
			if registered && p.Orphaned {
				toRestore = append(toRestore, p.ID)
			}
		}

		if len(toFlag) > 0 {
			if err := repos.Placement.SetOrphaned(toFlag, true); err != nil {
				return fmt.Errorf("flag orphans for %q: %w", key, err)
			}
			orphanedCount += len(toFlag)
			log.Warnf("[Reconcile] slot key %q matches no slot, flagged %d placements", key, len(toFlag))
		}
		if len(toRestore) > 0 {
			if err := repos.Placement.SetOrphaned(toRestore, false); err != nil {
				return fmt.Errorf("restore orphans for %q: %w", key, err)
			}
			restoredCount += len(toRestore)
		}
	}

	log.Infof("[Reconcile] done: %d placements flagged, %d restored", orphanedCount, restoredCount)
	return nil
}
