package model

// Go models that match resume.schema.json, used for validation and rendering.
// Optional text fields use the empty string for "absent"; a WorkExperience with
// an empty EndDate is a current position.

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

type WorkExperience struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets"`
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

type ResumeData struct {
	Name                 string           `json:"name,omitempty"`
	Contact              *Contact         `json:"contact"`
	Summary              string           `json:"summary,omitempty"`
	Experience           []WorkExperience `json:"experience"`
	AdditionalExperience []WorkExperience `json:"additionalExperience,omitempty"`
	Education            []Education      `json:"education"`
	Skills               []string         `json:"skills"`
	Certifications       []string         `json:"certifications,omitempty"`
	Languages            []string         `json:"languages,omitempty"`
}
