package request

// Field numerik pakai pointer supaya "tidak dikirim" bisa dibedakan dari
// nol; tag omitempty membuat validasi range hanya jalan kalau field ada.

type PatientDetailsRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	ContactNo   *string `json:"contactNo,omitempty" validate:"omitempty,min=6,max=20"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=1,lte=120"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Occupation  *string `json:"occupation,omitempty" validate:"omitempty,max=100"`
}

type DoctorDetailsRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	ContactNo      *string `json:"contactNo,omitempty" validate:"omitempty,min=6,max=20"`
	EmployeeID     *string `json:"employeeId,omitempty" validate:"omitempty,max=50"`
	Gender         *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Age            *int    `json:"age,omitempty" validate:"omitempty,gte=1,lte=120"`
	Experience     *int    `json:"experience,omitempty" validate:"omitempty,gte=0,lte=60"`
	Qualifications *string `json:"qualifications,omitempty" validate:"omitempty,max=200"`
}

type FamilyDetailsRequest struct {
	Name                string  `json:"name" validate:"required,max=100"`
	ContactNo           *string `json:"contactNo,omitempty" validate:"omitempty,min=6,max=20"`
	RelationWithPatient *string `json:"relationWithPatient,omitempty" validate:"omitempty,max=50"`
	PatientName         *string `json:"patientName,omitempty" validate:"omitempty,max=100"`
	Gender              *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Age                 *int    `json:"age,omitempty" validate:"omitempty,gte=1,lte=120"`
}
