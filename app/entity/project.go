package entity

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Project struct {
	ID          string
	Domain      string
	Name        string
	Description sql.NullString
	Skills      StringList
	Images      StringList
	Blob        ProjectBlob
	UserID      sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectBlob struct {
	ProjectIntro string `json:"projectIntro,omitempty"`
	GithubLink   string `json:"githubLink,omitempty"`
	DocumentLink string `json:"documentLink,omitempty"`
	LiveLink     string `json:"liveLink,omitempty"`
}

func (b ProjectBlob) Value() (driver.Value, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func (b *ProjectBlob) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*b = ProjectBlob{}
		return nil
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("unsupported type %T for ProjectBlob", src)
	}
}
