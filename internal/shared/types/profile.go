package types

// Profile describes the portfolio owner shown by whoami, about, contact and neofetch
type Profile struct {
	Name           string      `json:"name" yaml:"name" toml:"name"`
	Title          string      `json:"title" yaml:"title" toml:"title"`
	Location       string      `json:"location" yaml:"location" toml:"location"`
	Email          string      `json:"email" yaml:"email" toml:"email"`
	Phone          string      `json:"phone" yaml:"phone" toml:"phone"`
	Website        string      `json:"website" yaml:"website" toml:"website"`
	GitHub         string      `json:"github" yaml:"github" toml:"github"`
	Bio            string      `json:"bio" yaml:"bio" toml:"bio"`
	Education      []Education `json:"education" yaml:"education" toml:"education"`
	Skills         SkillSet    `json:"skills" yaml:"skills" toml:"skills"`
	Projects       []Project   `json:"projects" yaml:"projects" toml:"projects"`
	Certifications []string    `json:"certifications" yaml:"certifications" toml:"certifications"`
}

// Education is one entry of the owner's schooling history
type Education struct {
	School string `json:"school" yaml:"school" toml:"school"`
	Board  string `json:"board" yaml:"board" toml:"board"`
	Year   string `json:"year" yaml:"year" toml:"year"`
}

// SkillSet groups skills the way the skills command prints them
type SkillSet struct {
	Frontend []string `json:"frontend" yaml:"frontend" toml:"frontend"`
	Backend  []string `json:"backend" yaml:"backend" toml:"backend"`
	Other    []string `json:"other" yaml:"other" toml:"other"`
}

// Project is a featured project
type Project struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// GitHubURL returns the profile URL with scheme
func (p Profile) GitHubURL() string {
	if p.GitHub == "" {
		return ""
	}
	return "https://" + p.GitHub
}
