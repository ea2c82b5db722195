package stores

import (
	"context"
	"fmt"
	"log"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// PrescriptionStore is the paper prescription collection
type PrescriptionStore struct {
	*Store[domain.Prescription, string]
}

// NewPrescriptions creates an empty prescription store
func NewPrescriptions(table ports.Table[domain.Prescription, string]) *PrescriptionStore {
	return &PrescriptionStore{
		Store: New[domain.Prescription, string]("prescriptions", table, Options[domain.Prescription]{
			Defaults: func(p domain.Prescription) domain.Prescription {
				if p.Status == "" {
					p.Status = domain.StatusActive
				}
				if p.Date.IsZero() {
					p.Date = domain.Today()
				}
				return p
			},
		}),
	}
}

// ByPatient returns the prescriptions of one customer
func (s *PrescriptionStore) ByPatient(patientID int64) []domain.Prescription {
	return s.Filter(func(p domain.Prescription) bool {
		return p.PatientID != nil && *p.PatientID == patientID
	})
}

// ActiveCount returns the number of active prescriptions
func (s *PrescriptionStore) ActiveCount() int {
	return len(s.Filter(func(p domain.Prescription) bool {
		return p.Status == domain.StatusActive
	}))
}

// EPrescriptionStore is the electronic prescription collection
type EPrescriptionStore struct {
	*Store[domain.EPrescription, string]

	prescriptions *PrescriptionStore
}

// NewEPrescriptions creates an empty e-prescription store. Conversions are
// written into prescriptions.
func NewEPrescriptions(table ports.Table[domain.EPrescription, string], prescriptions *PrescriptionStore) *EPrescriptionStore {
	return &EPrescriptionStore{
		Store: New[domain.EPrescription, string]("e-prescriptions", table, Options[domain.EPrescription]{
			Defaults: func(p domain.EPrescription) domain.EPrescription {
				if p.Status == "" {
					p.Status = domain.StatusPending
				}
				if p.Date.IsZero() {
					p.Date = domain.Today()
				}
				return p
			},
		}),
		prescriptions: prescriptions,
	}
}

// ByPatient returns the e-prescriptions of one customer
func (s *EPrescriptionStore) ByPatient(patientID int64) []domain.EPrescription {
	return s.Filter(func(p domain.EPrescription) bool {
		return p.PatientID != nil && *p.PatientID == patientID
	})
}

// PendingCount returns the number of e-prescriptions still to be filled
func (s *EPrescriptionStore) PendingCount() int {
	return len(s.Filter(func(p domain.EPrescription) bool {
		return p.Status == domain.StatusPending || p.Status == domain.StatusVerified
	}))
}

// ConvertToPrescription files e-prescription id as an active paper
// prescription and marks it processed
func (s *EPrescriptionStore) ConvertToPrescription(ctx context.Context, id string) (domain.Prescription, error) {
	erx, ok := s.GetByID(id)
	if !ok {
		return domain.Prescription{}, fmt.Errorf("convert e-prescription %s: %w", id, domain.ErrNotFound)
	}

	rx, err := s.prescriptions.Create(ctx, domain.Prescription{
		PatientName: erx.PatientName,
		PatientID:   erx.PatientID,
		DoctorName:  erx.DoctorName,
		Date:        domain.Today(),
		Status:      domain.StatusActive,
		Medications: erx.Medications,
		Notes:       "Converted from e-prescription. Original notes: " + erx.Notes,
	})
	if err != nil {
		return domain.Prescription{}, err
	}

	erx.Status = domain.StatusProcessed
	if _, err := s.Update(ctx, erx); err != nil {
		log.Printf("⚠️ Prescription %s created but e-prescription %s not marked processed", rx.ID, id)
		return rx, err
	}
	return rx, nil
}
