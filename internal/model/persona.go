package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PersonaData 人群画像属性（人口统计 + 心理特征）
type PersonaData struct {
	Gender             string `json:"gender"`
	AgeRange           string `json:"ageRange"`
	Ethnicity          string `json:"ethnicity"`
	Location           string `json:"location"`
	Profession         string `json:"profession"`
	Education          string `json:"education"`
	IncomeLevel        string `json:"incomeLevel"`
	WorkStyle          string `json:"workStyle"`
	Personality        string `json:"personality"`
	CurrentState       string `json:"currentState"`
	CommunicationStyle string `json:"communicationStyle"`
	DecisionMaking     string `json:"decisionMaking"`
	PrimaryInterest    string `json:"primaryInterest"`
	TechnologyComfort  string `json:"technologyComfort"`
	Lifestyle          string `json:"lifestyle"`
	Values             string `json:"values"`
	ProblemSolving     string `json:"problemSolving"`
	SocialBehavior     string `json:"socialBehavior"`
	LearningStyle      string `json:"learningStyle"`
	Adaptability       string `json:"adaptability"`
}

// Persona 画像服务返回的单条记录
// 由画像服务创建，广告组装阶段只读
type Persona struct {
	Persona        PersonaData `json:"persona"`
	ID             PersonaID   `json:"id"`
	CreatedAt      string      `json:"createdAt,omitempty"`
	Timestamp      string      `json:"timestamp,omitempty"`
	RequestID      string      `json:"requestId,omitempty"`
	CharacterCount int         `json:"characterCount,omitempty"`
}

// PersonaBatch 批量生成画像的响应
type PersonaBatch struct {
	Personas   []Persona `json:"personas"`
	TotalCount int       `json:"totalCount"`
	Timestamp  string    `json:"timestamp"`
	RequestID  string    `json:"requestId"`
}

// PersonaOptions 画像生成参数
type PersonaOptions struct {
	Weighted bool   `json:"weighted"`
	Seed     string `json:"seed,omitempty"`
}

// PersonaID 画像ID，上游可能返回数字也可能返回字符串
// 序列化时保持上游原来的形式
type PersonaID struct {
	value   string
	numeric bool
}

// NewPersonaID 字符串形式的画像ID
func NewPersonaID(s string) PersonaID {
	return PersonaID{value: s}
}

func (id *PersonaID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = PersonaID{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PersonaID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("persona id 既不是字符串也不是数字: %s", string(data))
	}
	*id = PersonaID{value: n.String(), numeric: true}
	return nil
}

// MarshalJSON 数字ID按数字输出，字符串ID按字符串输出
func (id PersonaID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id PersonaID) String() string {
	return id.value
}

// IsZero 没有ID
func (id PersonaID) IsZero() bool {
	return id.value == ""
}
