// File path: internal/locale/labels.go
package locale

var labels = map[Locale]map[string]string{
	English: {
		"app_name":          "Auto SSR QA Report Insight Pro",
		"app_desc":          "Upload AI-generated LQA reports. The auditor filters noise, identifies P0/P1 issues, and produces a professional fix list.",
		"powered_by":        "Powered by a schema-constrained LLM audit • Reports stay in memory",
		"btn_generate":      "Generate Audit Report",
		"status_idle":       "AI Auditor is ready",
		"status_parsing":    "Reading report files...",
		"status_auditing":   "The model is analyzing critical issues (P0/P1)...",
		"status_formatting": "Structuring final data...",
		"error_prefix":      "Error",
		"error_unexpected":  "An unexpected error occurred during the AI audit.",

		"upload_title":     "Upload LQA Reports",
		"upload_desc":      "Select HTML report files to add them to this audit.",
		"upload_supported": "Supported: .html, .htm from Auto SSR tools",
		"btn_select_files": "Select Files",
		"btn_upload":       "Add Files",
		"files_selected":   "files selected",
		"btn_clear_all":    "Clear All",
		"btn_remove":       "Remove",

		"nav_overview":      "Overview",
		"nav_fix_list":      "Fix List",
		"nav_needs_context": "Needs Context",
		"nav_improvements":  "Improvements",
		"btn_export":        "Export XLSX",
		"btn_new_audit":     "New Audit",

		"card_critical":         "Critical (P0)",
		"card_high":             "High (P1)",
		"card_context":          "Needs Context",
		"card_files":            "Files Audited",
		"title_exec_summary":    "Executive Summary",
		"title_issues_category": "Issues by Category",
		"title_top_risk":        "Top Risk Areas",
		"generated_on":          "Generated",

		"title_action_required": "Action Required",
		"col_priority":          "Priority",
		"col_lang":              "Lang",
		"col_category":          "Category",
		"col_summary":           "Summary",
		"col_proposed":          "Proposed Fix",
		"col_action":            "Action",
		"col_file":              "File",
		"col_location":          "Location",
		"col_source":            "Source Text",
		"col_target":            "Target Text",
		"col_verification":      "Verification Steps",
		"col_confidence":        "Confidence",
		"col_occurrences":       "Occurrences",
		"col_missing_info":      "Missing Information",
		"col_risk":              "Risk If Wrong",
		"col_next_step":         "Suggested Next Step",
		"label_context":         "Issue Context",
		"label_file":            "File:",
		"label_source":          "Source:",
		"label_current":         "Current:",
		"label_why":             "Why It Matters",
		"label_recommendation":  "Recommendation",
		"label_verification":    "Verification Steps",
		"label_other_locations": "Also Seen In",

		"label_missing_info": "Missing Information",
		"label_risk":         "Risk If Wrong",
		"label_next_step":    "Next Step:",

		"title_process_opt": "Process Optimization",
		"label_benefit":     "Expected Benefit:",
		"label_example":     "Example:",
		"not_available":     "N/A",
	},
	Chinese: {
		"app_name":          "Auto SSR QA 报告智能审计 Pro",
		"app_desc":          "上传 AI 生成的 LQA 报告。审计员会过滤噪音，识别 P0/P1 问题，并生成专业的修复清单。",
		"powered_by":        "由结构化 LLM 审计驱动 • 报告仅保存在内存中",
		"btn_generate":      "生成审计报告",
		"status_idle":       "AI 审计员准备就绪",
		"status_parsing":    "正在读取报告文件...",
		"status_auditing":   "模型正在分析关键问题 (P0/P1)...",
		"status_formatting": "正在构建最终数据...",
		"error_prefix":      "错误",
		"error_unexpected":  "AI 审计过程中发生意外错误。",

		"upload_title":     "上传 LQA 报告",
		"upload_desc":      "选择 HTML 报告文件以加入本次审计。",
		"upload_supported": "支持格式：来自 Auto SSR 工具的 .html, .htm",
		"btn_select_files": "选择文件",
		"btn_upload":       "添加文件",
		"files_selected":   "个文件已选",
		"btn_clear_all":    "清空所有",
		"btn_remove":       "移除",

		"nav_overview":      "概览",
		"nav_fix_list":      "修复清单",
		"nav_needs_context": "待确认项",
		"nav_improvements":  "改进建议",
		"btn_export":        "导出 XLSX",
		"btn_new_audit":     "新审计",

		"card_critical":         "严重 (P0)",
		"card_high":             "高优 (P1)",
		"card_context":          "待确认",
		"card_files":            "审计文件数",
		"title_exec_summary":    "执行摘要",
		"title_issues_category": "问题分类",
		"title_top_risk":        "高风险领域",
		"generated_on":          "生成时间",

		"title_action_required": "待修复项",
		"col_priority":          "优先级",
		"col_lang":              "语言",
		"col_category":          "类别",
		"col_summary":           "摘要",
		"col_proposed":          "建议修复",
		"col_action":            "操作",
		"col_file":              "文件",
		"col_location":          "位置",
		"col_source":            "原文",
		"col_target":            "译文",
		"col_verification":      "验证步骤",
		"col_confidence":        "置信度",
		"col_occurrences":       "出现次数",
		"col_missing_info":      "缺失信息",
		"col_risk":              "潜在风险",
		"col_next_step":         "建议下一步",
		"label_context":         "问题背景",
		"label_file":            "文件:",
		"label_source":          "原文:",
		"label_current":         "当前译文:",
		"label_why":             "影响说明",
		"label_recommendation":  "修改建议",
		"label_verification":    "验证步骤",
		"label_other_locations": "其他出现位置",

		"label_missing_info": "缺失信息",
		"label_risk":         "潜在风险",
		"label_next_step":    "下一步:",

		"title_process_opt": "流程优化建议",
		"label_benefit":     "预期收益:",
		"label_example":     "示例:",
		"not_available":     "无",
	},
}

// T returns the label for key in l. Unknown locales use Default and unknown
// keys are returned unchanged.
func (l Locale) T(key string) string {
	table, ok := labels[l]
	if !ok {
		table = labels[Default]
	}
	if value, ok := table[key]; ok {
		return value
	}
	return key
}
