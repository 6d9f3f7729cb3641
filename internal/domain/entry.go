package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ProjectType string

const (
	ProjectTypeFrontend     ProjectType = "frontend"
	ProjectTypeVibeCoding   ProjectType = "vibecoding"
	ProjectTypeFullStack    ProjectType = "fullstack"
	ProjectTypeMiniProgram  ProjectType = "miniprogram"
	ProjectTypeApp          ProjectType = "app"
	ProjectTypeUIUX         ProjectType = "uiux"
	ProjectTypeBackend      ProjectType = "backend"
	ProjectTypeDevOps       ProjectType = "devops"
	ProjectTypeGame         ProjectType = "game"
	ProjectType3DModel      ProjectType = "3d-model"
	ProjectTypeIllustration ProjectType = "illustration"
	ProjectTypeOther        ProjectType = "other"
)

// ProjectTypes lists every project type in display order.
var ProjectTypes = []ProjectType{
	ProjectTypeFrontend,
	ProjectTypeVibeCoding,
	ProjectTypeFullStack,
	ProjectTypeMiniProgram,
	ProjectTypeApp,
	ProjectTypeUIUX,
	ProjectTypeBackend,
	ProjectTypeDevOps,
	ProjectTypeGame,
	ProjectType3DModel,
	ProjectTypeIllustration,
	ProjectTypeOther,
}

var projectTypeLabels = map[ProjectType]string{
	ProjectTypeFrontend:     "前端项目",
	ProjectTypeVibeCoding:   "VibeCoding",
	ProjectTypeFullStack:    "全栈项目",
	ProjectTypeMiniProgram:  "小程序",
	ProjectTypeApp:          "APP",
	ProjectTypeUIUX:         "UI/UX 设计",
	ProjectTypeBackend:      "后端项目",
	ProjectTypeDevOps:       "DevOps",
	ProjectTypeGame:         "游戏",
	ProjectType3DModel:      "3D 模型",
	ProjectTypeIllustration: "插画",
	ProjectTypeOther:        "其他",
}

func ParseProjectType(v string) (ProjectType, error) {
	t := ProjectType(v)
	if _, ok := projectTypeLabels[t]; !ok {
		return "", fmt.Errorf("%w: project type %q", ErrInvalidEnumValue, v)
	}
	return t, nil
}

func (t ProjectType) Label() string {
	if label, ok := projectTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

type Status string

const (
	StatusDeveloping Status = "developing"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

var Statuses = []Status{StatusDeveloping, StatusCompleted, StatusArchived}

var statusLabels = map[Status]string{
	StatusDeveloping: "开发中",
	StatusCompleted:  "已完成",
	StatusArchived:   "已归档",
}

var statusColors = map[Status]string{
	StatusDeveloping: "#e6a23c",
	StatusCompleted:  "#67c23a",
	StatusArchived:   "#909399",
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if _, ok := statusLabels[s]; !ok {
		return "", fmt.Errorf("%w: status %q", ErrInvalidEnumValue, v)
	}
	return s, nil
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Color returns the hex colour used to badge the status.
func (s Status) Color() string {
	return statusColors[s]
}

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

func ParseMode(v string) (Mode, error) {
	switch m := Mode(v); m {
	case ModeLight, ModeDark:
		return m, nil
	}
	return "", fmt.Errorf("%w: mode %q", ErrInvalidEnumValue, v)
}

// Entry is one showcased project.
type Entry struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CoverURL     string      `json:"cover_url"`
	ProjectType  ProjectType `json:"project_type"`
	Status       Status      `json:"status"`
	Technologies []string    `json:"technologies"`
	DemoURL      string      `json:"demo_url,omitempty"`
	GithubURL    string      `json:"github_url,omitempty"`
	Featured     bool        `json:"featured"`
	SortOrder    int         `json:"sort_order"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Mode         Mode        `json:"mode,omitempty"`

	// Detail view fields.
	Overview      string   `json:"overview,omitempty"`
	Role          string   `json:"role,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Client        string   `json:"client,omitempty"`
	Challenge     string   `json:"challenge,omitempty"`
	Solution      string   `json:"solution,omitempty"`
	GalleryImages []string `json:"gallery_images,omitempty"`
}

// Validate checks enum membership and the required title.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, err := ParseProjectType(string(e.ProjectType)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(e.Status)); err != nil {
		return err
	}
	if e.Mode != "" {
		if _, err := ParseMode(string(e.Mode)); err != nil {
			return err
		}
	}
	return nil
}

// ResolvedMode returns the stored mode or, when absent, dark for ids whose
// leading integer is even and light otherwise. The leading integer is read
// like a lenient integer parse: surrounding spaces and a sign are allowed,
// a 0x prefix switches to hex, and anything after the digits is ignored, so
// "12abc" is 12. Ids without leading digits resolve to light.
func (e Entry) ResolvedMode() Mode {
	if e.Mode != "" {
		return e.Mode
	}
	digits := leadingInteger(e.ID)
	if digits == "" {
		return ModeLight
	}
	// Parity only depends on the last digit, in base 10 and base 16 alike.
	last, err := strconv.ParseUint(digits[len(digits)-1:], 16, 8)
	if err == nil && last%2 == 0 {
		return ModeDark
	}
	return ModeLight
}

// leadingInteger returns the digit run at the start of s, after optional
// whitespace, sign and hex prefix.
func leadingInteger(s string) string {
	s = strings.TrimLeft(s, " \t\n\r")
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		isDigit = func(c byte) bool {
			return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		}
	}
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return s[:n]
}

// Clone returns a deep copy so callers can't alias the slices of a stored entry.
func (e Entry) Clone() Entry {
	c := e
	if e.Technologies != nil {
		c.Technologies = append([]string(nil), e.Technologies...)
	}
	if e.GalleryImages != nil {
		c.GalleryImages = append([]string(nil), e.GalleryImages...)
	}
	return c
}

// EntryPatch carries the fields supplied by a create or update request.
// A nil field means "not supplied".
type EntryPatch struct {
	Title         *string      `json:"title,omitempty"`
	Description   *string      `json:"description,omitempty"`
	CoverURL      *string      `json:"cover_url,omitempty"`
	ProjectType   *ProjectType `json:"project_type,omitempty"`
	Status        *Status      `json:"status,omitempty"`
	Technologies  []string     `json:"technologies,omitempty"`
	DemoURL       *string      `json:"demo_url,omitempty"`
	GithubURL     *string      `json:"github_url,omitempty"`
	Featured      *bool        `json:"featured,omitempty"`
	SortOrder     *int         `json:"sort_order,omitempty"`
	Mode          *Mode        `json:"mode,omitempty"`
	Overview      *string      `json:"overview,omitempty"`
	Role          *string      `json:"role,omitempty"`
	Duration      *string      `json:"duration,omitempty"`
	Client        *string      `json:"client,omitempty"`
	Challenge     *string      `json:"challenge,omitempty"`
	Solution      *string      `json:"solution,omitempty"`
	GalleryImages []string     `json:"gallery_images,omitempty"`
}

// ApplyTo merges the supplied fields into e. Enum values are validated
// before anything is written, so a failed merge leaves e untouched.
func (p EntryPatch) ApplyTo(e *Entry) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	if p.ProjectType != nil {
		if _, err := ParseProjectType(string(*p.ProjectType)); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	if p.Mode != nil && *p.Mode != "" {
		if _, err := ParseMode(string(*p.Mode)); err != nil {
			return err
		}
	}

	setString(&e.Title, p.Title)
	setString(&e.Description, p.Description)
	setString(&e.CoverURL, p.CoverURL)
	setString(&e.DemoURL, p.DemoURL)
	setString(&e.GithubURL, p.GithubURL)
	setString(&e.Overview, p.Overview)
	setString(&e.Role, p.Role)
	setString(&e.Duration, p.Duration)
	setString(&e.Client, p.Client)
	setString(&e.Challenge, p.Challenge)
	setString(&e.Solution, p.Solution)

	if p.ProjectType != nil {
		e.ProjectType = *p.ProjectType
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Mode != nil {
		e.Mode = *p.Mode
	}
	if p.Technologies != nil {
		e.Technologies = append([]string(nil), p.Technologies...)
	}
	if p.GalleryImages != nil {
		e.GalleryImages = append([]string(nil), p.GalleryImages...)
	}
	if p.Featured != nil {
		e.Featured = *p.Featured
	}
	if p.SortOrder != nil {
		e.SortOrder = *p.SortOrder
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
