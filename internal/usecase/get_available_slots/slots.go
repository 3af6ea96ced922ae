package get_available_slots

import (
	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/pkg/types"
)

// buildSlotGrid enumerates candidate slots every SlotIntervalMinutes over
// [start, end). The closing time itself is never a candidate.
func buildSlotGrid(start, end types.TimeString) ([]types.TimeString, error) {
	grid := make([]types.TimeString, 0)
	for m := start.Minutes(); m < end.Minutes(); m += domain.SlotIntervalMinutes {
		slot, err := types.FromMinutes(m)
		if err != nil {
			return nil, err
		}
		grid = append(grid, slot)
	}
	return grid, nil
}

// freeSlots filters the grid down to slots not covered by any occupied
// interval. Occupancy is duration-aware: an appointment at 10:00 lasting 60
// minutes removes both 10:00 and 10:30.
func freeSlots(grid []types.TimeString, occupied []domain.Appointment) ([]types.TimeString, error) {
	free := make([]types.TimeString, 0, len(grid))
	for _, candidate := range grid {
		covered := false
		for i := range occupied {
			end, err := occupied[i].OccupiedUntil()
			if err != nil {
				return nil, err
			}
			if candidate.Minutes() >= occupied[i].TimeSlot.Minutes() && candidate.Minutes() < end.Minutes() {
				covered = true
				break
			}
		}
		if !covered {
			free = append(free, candidate)
		}
	}
	return free, nil
}
