package constvars

const (
	RegexScheduleLabel = `(?i)^\s*(\d+)\s*(day|days|week|weeks|month|months|year|years)\s*$`
)
