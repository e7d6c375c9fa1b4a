package postgres

// SQL queries for machine event storage.

const (
	eventColumns = `
			event_id, event_time, received_time, machine_id,
			duration_ms, defect_count, line_id, factory_id`

	// queryFindByEventIDs is the bulk existing-record lookup for one batch.
	queryFindByEventIDs = `
		SELECT` + eventColumns + `
		FROM machine_events
		WHERE event_id = ANY($1)
	`

	// queryUpsertEvent inserts a new record or overwrites an existing one.
	// The WHERE guard keeps last-writer-wins by receipt time inside the database,
	// so two instances racing on the same event_id still converge on the newest payload.
	queryUpsertEvent = `
		INSERT INTO machine_events (
			event_id, event_time, received_time, machine_id,
			duration_ms, defect_count, line_id, factory_id, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (event_id) DO UPDATE SET
			event_time    = EXCLUDED.event_time,
			received_time = EXCLUDED.received_time,
			machine_id    = EXCLUDED.machine_id,
			duration_ms   = EXCLUDED.duration_ms,
			defect_count  = EXCLUDED.defect_count,
			line_id       = EXCLUDED.line_id,
			factory_id    = EXCLUDED.factory_id,
			updated_at    = NOW()
		WHERE machine_events.received_time < EXCLUDED.received_time
	`

	// queryFindByMachineAndTimeRange serves the stats window (half-open).
	// Backed by idx_machine_events_machine_time.
	queryFindByMachineAndTimeRange = `
		SELECT` + eventColumns + `
		FROM machine_events
		WHERE machine_id = $1
		  AND event_time >= $2
		  AND event_time < $3
		ORDER BY event_time ASC, event_id ASC
	`

	// queryFindByFactoryAndTimeRange serves top-defect-lines (half-open, lines only).
	queryFindByFactoryAndTimeRange = `
		SELECT` + eventColumns + `
		FROM machine_events
		WHERE factory_id = $1
		  AND line_id IS NOT NULL
		  AND event_time >= $2
		  AND event_time < $3
		ORDER BY event_time ASC, event_id ASC
	`
)
