package resume

import "strings"

const defaultFileName = "resume"

// Normalize 将可能残缺的聚合数据整理为可直接渲染的形态。
// 它从不失败：缺失的集合退化为省略的区块，非法的选项退回默认值。
func Normalize(doc Document, opts Options) (Document, Options) {
	if doc.Profile != nil {
		p := *doc.Profile
		p.Name = strings.TrimSpace(p.Name)
		p.Email = strings.TrimSpace(p.Email)
		p.Phone = strings.TrimSpace(p.Phone)
		p.PortfolioWebsite = strings.TrimSpace(p.PortfolioWebsite)
		p.GithubLink = strings.TrimSpace(p.GithubLink)
		p.LinkedinLink = strings.TrimSpace(p.LinkedinLink)
		doc.Profile = &p
	}

	doc.Skills = dropEmptySkillGroups(doc.Skills)

	if !ValidTemplate(opts.Template) {
		opts.Template = TemplateModern
	}
	if !ValidPageSize(opts.PageSize) {
		opts.PageSize = PageSizeA4
	}

	opts.FileName = strings.TrimSpace(opts.FileName)
	if opts.FileName == "" && doc.Profile != nil {
		opts.FileName = doc.Profile.Name
	}
	if strings.TrimSpace(opts.FileName) == "" {
		opts.FileName = defaultFileName
	}

	return doc, opts
}

// dropEmptySkillGroups 过滤掉没有任何技能项的分组，避免渲染出空标签。
func dropEmptySkillGroups(groups []SkillGroup) []SkillGroup {
	if len(groups) == 0 {
		return groups
	}
	filtered := make([]SkillGroup, 0, len(groups))
	for _, g := range groups {
		items := make([]SkillItem, 0, len(g.Skills))
		for _, s := range g.Skills {
			if strings.TrimSpace(s.Name) == "" {
				continue
			}
			items = append(items, s)
		}
		if len(items) == 0 {
			continue
		}
		g.Skills = items
		filtered = append(filtered, g)
	}
	return filtered
}
