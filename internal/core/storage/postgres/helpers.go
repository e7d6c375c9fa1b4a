package postgres

import (
	"database/sql"
	"fmt"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a database row into a MachineEvent.
// Nullable line_id / factory_id map to nil pointers.
func scanEventRow(row scanner) (*v1.MachineEvent, error) {
	var evt v1.MachineEvent
	var lineID, factoryID sql.NullString

	err := row.Scan(
		&evt.EventID,
		&evt.EventTime,
		&evt.ReceivedTime,
		&evt.MachineID,
		&evt.DurationMs,
		&evt.DefectCount,
		&lineID,
		&factoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	evt.EventTime = evt.EventTime.UTC()
	evt.ReceivedTime = evt.ReceivedTime.UTC()
	evt.LineID = fromNullString(lineID)
	evt.FactoryID = fromNullString(factoryID)
	return &evt, nil
}

func scanEventRows(rows *sql.Rows) ([]*v1.MachineEvent, error) {
	defer rows.Close()

	var events []*v1.MachineEvent
	for rows.Next() {
		evt, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
