package service

import (
	"fmt"
	"strings"
)

// Chart JSON templates shown to the model. The deployment operates in
// Persian, so titles and labels are Persian placeholders.
const (
	pieTemplate     = `"chart_type": "pie", "title": "عنوان نمودار", "labels": ["برچسب1", "برچسب2"], "values": [10, 20]`
	barLineTemplate = `"chart_type": "bar", "title": "عنوان نمودار", "x_axis": {"label": "برچسب محور x", "values": ["X1", "X2"]}, "y_axis": {"label": "برچسب محور y", "values": [100, 200]}`
)

// buildSQLPrompt asks the model to translate a Persian question into a
// SQL query over the described schema, returning only the SQL text.
func buildSQLPrompt(schema, question string) string {
	return fmt.Sprintf(`شما یک دستیار تبدیل سوالات فارسی به کوئری SQL هستید.
از ساختار جداول زیر استفاده کنید:
%s
فقط کوئری SQL را به عنوان پاسخ برگردان.
سوال: %s
`, schema, question)
}

// buildAnalysisPrompt asks the model for a full prose analysis of the
// extracted rows.
func buildAnalysisPrompt(question string, results [][]any) string {
	return fmt.Sprintf(`شما یک دستیار تحلیل داده هستید.
سوال کاربر: %s
نتایج استخراج شده: %v
لطفاً تحلیل کامل و دقیق از داده‌ها ارائه دهید.`, question, results)
}

// buildChartPrompt asks the model for chart JSON matching the template
// for the chosen shape.
func buildChartPrompt(question string, results [][]any, format, template string) string {
	return fmt.Sprintf(`
شما یک دستیار تولید نمودار هستید.
سوال: %s
نوع نمودار: %s
داده‌ها: %v
لطفاً پاسخ را فقط در قالب JSON معتبر برگردانید.
{ %s }
`, question, format, results, template)
}

// StripFences extracts the payload from possibly code-fenced model
// output. A leading fence line (with or without a language tag) and a
// trailing fence are removed; text without fences passes through
// unchanged apart from whitespace trimming.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
