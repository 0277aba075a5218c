package model

// ResultRecord — one semester's outcome for one student. Maps to
// result_records.
//
// StudentUSN references accounts.username by convention only; there is
// no foreign key. At most one record exists per (student, semester)
// pair, enforced by delete-then-insert on ingest rather than by a
// uniqueness constraint.
type ResultRecord struct {
	ResultID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"result_id"`
	StudentUSN string      `gorm:"type:varchar(20);not null;index:idx_result_records_student_semester" json:"student_id"`
	Semester   string      `gorm:"type:varchar(100);not null;index:idx_result_records_student_semester" json:"semester"`
	GPA        string      `gorm:"type:varchar(8);not null" json:"gpa"`
	Subjects   SubjectList `gorm:"type:jsonb;not null"      json:"subjects"`
	BaseModel
}

// TableName sets the table name.
func (ResultRecord) TableName() string { return "result_records" }
