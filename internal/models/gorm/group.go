package gorm

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// GroupPrivacy mirrors the Postgres ENUM 'group_privacy'
type GroupPrivacy string

const (
	GroupPublic     GroupPrivacy = "public"
	GroupPrivate    GroupPrivacy = "private"
	GroupInviteOnly GroupPrivacy = "invite_only"
)

// GroupMemberRole mirrors the Postgres ENUM 'group_member_role'
type GroupMemberRole string

const (
	GroupRoleMember   GroupMemberRole = "member"
	GroupRoleLeader   GroupMemberRole = "leader"
	GroupRoleCoLeader GroupMemberRole = "co_leader"
)

// GroupMemberStatus mirrors the Postgres ENUM 'group_member_status'
type GroupMemberStatus string

const (
	MembershipActive   GroupMemberStatus = "active"
	MembershipPending  GroupMemberStatus = "pending"
	MembershipInactive GroupMemberStatus = "inactive"
)

// MeetingSchedule describes when and where a group regularly meets.
type MeetingSchedule struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

func (m MeetingSchedule) Value() (driver.Value, error) { return jsonValue(m) }
func (m *MeetingSchedule) Scan(src interface{}) error  { return jsonScan(src, m) }

type Group struct {
	ID              string           `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name            string           `gorm:"column:name" json:"name"`
	Description     string           `gorm:"column:description" json:"description"`
	Category        string           `gorm:"column:category;index" json:"category"`
	Privacy         GroupPrivacy     `gorm:"column:privacy;type:text;default:public" json:"privacy"`
	LeaderID        string           `gorm:"column:leader_id;type:uuid" json:"leader_id"`
	ImageURL        *string          `gorm:"column:image_url" json:"image_url,omitempty"`
	MeetingSchedule *MeetingSchedule `gorm:"column:meeting_schedule;type:text" json:"meeting_schedule,omitempty"`
	Tags            StringList       `gorm:"column:tags;type:text" json:"tags,omitempty"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Leader  *User         `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

// TableName specifies the table name for GORM
func (Group) TableName() string {
	return "groups"
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

// GroupMember holds one membership row per (group, user).
type GroupMember struct {
	ID       string            `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	GroupID  string            `gorm:"column:group_id;type:uuid;uniqueIndex:idx_group_member" json:"group_id"`
	UserID   string            `gorm:"column:user_id;type:uuid;uniqueIndex:idx_group_member" json:"user_id"`
	Role     GroupMemberRole   `gorm:"column:role;type:text;default:member" json:"role"`
	Status   GroupMemberStatus `gorm:"column:status;type:text;default:active" json:"status"`
	JoinedAt time.Time         `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (GroupMember) TableName() string {
	return "group_members"
}

func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
