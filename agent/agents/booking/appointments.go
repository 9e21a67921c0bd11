package booking

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Appointment is one committed booking.
type Appointment struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
}

// AppointmentBook is the append-only booking ledger. Every append re-reads
// the file first so records written by another process since the last call
// are kept. Last-write-wins between true concurrent writers.
type AppointmentBook struct {
	mu   sync.Mutex
	path string
}

func NewAppointmentBook(path string) *AppointmentBook {
	return &AppointmentBook{path: path}
}

// Append assigns the appointment an id, persists it and returns the stored
// record.
func (b *AppointmentBook) Append(appt Appointment) (Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.readAll()
	if err != nil {
		return Appointment{}, err
	}
	appt.ID = uuid.NewString()
	all = append(all, appt)

	if err := b.writeAll(all); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

// List returns every appointment on file, oldest first.
func (b *AppointmentBook) List() ([]Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readAll()
}

func (b *AppointmentBook) readAll() ([]Appointment, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read appointment book: %w", err)
	}

	var all []Appointment
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode appointment book: %w", err)
	}
	return all, nil
}

func (b *AppointmentBook) writeAll(all []Appointment) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create appointment book dir: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode appointment book: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write appointment book: %w", err)
	}
	return nil
}
