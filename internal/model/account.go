package model

// Account — one person able to authenticate. Maps to accounts.
//
// For the admin the password column holds a bcrypt hash; for students it
// holds the normalized date of birth in YYYY-MM-DD form, compared as a
// plain string at login. That is a deliberate choice carried over from
// the marks-sheet workflow (the DOB column doubles as the credential),
// not an oversight.
type Account struct {
	AccountID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Username   string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"username"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Password   string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role       string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	Department string `gorm:"type:varchar(10)"                               json:"department,omitempty"`
	Batch      int    `gorm:"type:integer"                                   json:"batch,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Account) TableName() string { return "accounts" }
