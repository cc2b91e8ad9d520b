package response

import (
	"meditrack/internal/data/entity"
)

// JSON keys mengikuti format yang dibaca dashboard (camelCase).

type PatientResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	ContactNo   *string `json:"contactNo,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`
}

type DoctorResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Name           string  `json:"name"`
	ContactNo      *string `json:"contactNo,omitempty"`
	EmployeeID     *string `json:"employeeId,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Age            *int    `json:"age,omitempty"`
	Experience     *int    `json:"experience,omitempty"`
	Qualifications *string `json:"qualifications,omitempty"`
}

type FamilyMemberResponse struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"userId"`
	PatientID           *string `json:"patientId,omitempty"`
	Name                string  `json:"name"`
	ContactNo           *string `json:"contactNo,omitempty"`
	RelationWithPatient *string `json:"relationWithPatient,omitempty"`
	PatientName         *string `json:"patientName,omitempty"`
	Gender              *string `json:"gender,omitempty"`
	Age                 *int    `json:"age,omitempty"`
}

func PatientToResponse(p *entity.Patient) PatientResponse {
	return PatientResponse{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		Name:        p.Name,
		ContactNo:   p.ContactNo,
		Age:         p.Age,
		Gender:      p.Gender,
		DateOfBirth: p.DateOfBirth,
		Occupation:  p.Occupation,
	}
}

func DoctorToResponse(d *entity.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             d.ID.String(),
		UserID:         d.UserID.String(),
		Name:           d.Name,
		ContactNo:      d.ContactNo,
		EmployeeID:     d.EmployeeID,
		Gender:         d.Gender,
		Age:            d.Age,
		Experience:     d.Experience,
		Qualifications: d.Qualifications,
	}
}

func FamilyMemberToResponse(f *entity.FamilyMember) FamilyMemberResponse {
	resp := FamilyMemberResponse{
		ID:                  f.ID.String(),
		UserID:              f.UserID.String(),
		Name:                f.Name,
		ContactNo:           f.ContactNo,
		RelationWithPatient: f.RelationWithPatient,
		PatientName:         f.PatientName,
		Gender:              f.Gender,
		Age:                 f.Age,
	}
	if f.PatientID != nil {
		id := f.PatientID.String()
		resp.PatientID = &id
	}
	return resp
}

// RoleDataToResponse memetakan profile row generik ke response DTO yang
// sesuai. Mengembalikan nil kalau belum ada profile row.
func RoleDataToResponse(roleData any) any {
	switch v := roleData.(type) {
	case *entity.Patient:
		return PatientToResponse(v)
	case *entity.Doctor:
		return DoctorToResponse(v)
	case *entity.FamilyMember:
		return FamilyMemberToResponse(v)
	default:
		return nil
	}
}
