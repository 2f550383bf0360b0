package view

// Translator resolves a message within a category, in the manner of
// Yii::t("system", "Update Category").
type Translator interface {
	T(category, message string) string
}

// Catalog is a static message table for one language.
type Catalog struct {
	Lang     string
	messages map[string]map[string]string
}

var catalogs = map[string]map[string]map[string]string{
	"zh-CN": {
		"app": {
			"Update":  "更新",
			"Create":  "创建",
			"Save":    "保存",
			"Delete":  "删除",
			"View":    "查看",
			"Actions": "操作",
		},
		"system": {
			"Manage Category":        "分类管理",
			"Create Category":        "创建分类",
			"Update Category":        "更新分类",
			"Name":                   "名称",
			"Slug":                   "标识",
			"Parent":                 "上级分类",
			"Description":            "描述",
			"Sort":                   "排序",
			"Image":                  "图片",
			"Remove image":           "删除图片",
			"No parent":              "无上级分类",
			"Created At":             "创建时间",
			"Updated At":             "更新时间",
			"No categories yet.":     "暂无分类。",
			"Are you sure to delete": "确定删除该分类吗？",
		},
	},
}

// NewCatalog returns the catalog for lang. Unknown languages translate to
// the source text.
func NewCatalog(lang string) *Catalog {
	return &Catalog{Lang: lang, messages: catalogs[lang]}
}

func (c *Catalog) T(category, message string) string {
	if c == nil {
		return message
	}
	if msg, ok := c.messages[category][message]; ok {
		return msg
	}
	return message
}
