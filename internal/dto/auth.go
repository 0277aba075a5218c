package dto

// ── auth DTOs ──

// LoginRequest login payload. Username is the USN for students or the
// admin literal; Password is the DOB string for students.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse successful login payload.
type LoginResponse struct {
	Token      string `json:"token"`
	Username   string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// StudentResponse one student account in the admin listing. DOB doubles
// as the stored credential.
type StudentResponse struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Department string `json:"department,omitempty"`
	Batch      int    `json:"batch,omitempty"`
}
