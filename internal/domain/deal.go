package domain

// AccessLevel 权益的访问级别
type AccessLevel string

const (
	AccessPublic AccessLevel = "public" // 所有用户可领取
	AccessLocked AccessLevel = "locked" // 仅认证用户可领取
)

// Category 权益分类（固定枚举）
type Category string

const (
	CategoryCloud     Category = "Cloud"
	CategoryMarketing Category = "Marketing"
	CategoryDevTools  Category = "DevTools"
	CategoryFinance   Category = "Finance"
	CategoryDesign    Category = "Design"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCloud, CategoryMarketing, CategoryDevTools, CategoryFinance, CategoryDesign:
		return true
	}
	return false
}

// Deal 合作方权益，进程启动时定义，运行期不可变
type Deal struct {
	ID               string      `json:"id"`
	PartnerName      string      `json:"partnerName"`
	Logo             string      `json:"logo"`
	Title            string      `json:"title"`
	ShortDescription string      `json:"shortDescription"`
	FullDescription  string      `json:"fullDescription"`
	Benefit          string      `json:"benefit"`
	Category         Category    `json:"category"`
	AccessLevel      AccessLevel `json:"accessLevel"`
	Conditions       []string    `json:"conditions"`
}
