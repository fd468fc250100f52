package mqtt

import (
	"context"
	"sort"
	"time"

	"github.com/kilianp07/transitplan/core/model"
)

// Publisher delivers finished schedules to depot systems.
type Publisher interface {
	PublishSchedule(ctx context.Context, msg ScheduleMessage) error
	Close()
}

// TripMessage is one departure as seen by a depot.
type TripMessage struct {
	RouteNo   string `json:"route_no"`
	Direction string `json:"direction"`
	Time      string `json:"time"`
	VehicleID string `json:"vehicle_id"`
	Class     string `json:"class"`
}

// ScheduleMessage is the payload published for a planning run.
type ScheduleMessage struct {
	MessageID   string        `json:"message_id"`
	RunID       string        `json:"run_id"`
	Interlining int           `json:"interlining"`
	Vehicles    int           `json:"vehicles"`
	GeneratedAt time.Time     `json:"generated_at"`
	Trips       []TripMessage `json:"trips"`
}

// NewScheduleMessage flattens res into departure order, A→B before B→A on ties.
func NewScheduleMessage(runID string, res model.ScheduleResult, at time.Time) ScheduleMessage {
	type dep struct {
		minute int
		trip   TripMessage
	}
	var all []dep
	for _, d := range model.Directions {
		entries := res.ScheduleAB
		if d == model.BtoA {
			entries = res.ScheduleBA
		}
		for _, e := range entries {
			all = append(all, dep{minute: e.Departure, trip: TripMessage{
				RouteNo:   e.RouteNo,
				Direction: d.String(),
				Time:      e.Time,
				VehicleID: e.VehicleID,
				Class:     e.Class.String(),
			}})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].minute < all[j].minute })
	trips := make([]TripMessage, len(all))
	for i, d := range all {
		trips[i] = d.trip
	}
	return ScheduleMessage{
		RunID:       runID,
		Interlining: res.Interlining,
		Vehicles:    res.TotalVehicles,
		GeneratedAt: at,
		Trips:       trips,
	}
}

// Duties groups the trips by vehicle, keeping departure order.
func (m ScheduleMessage) Duties() map[string][]TripMessage {
	out := make(map[string][]TripMessage)
	for _, t := range m.Trips {
		out[t.VehicleID] = append(out[t.VehicleID], t)
	}
	return out
}
