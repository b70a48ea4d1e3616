package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// asinToken captura o ASIN no início do nome das campanhas single-SKU
var asinToken = regexp.MustCompile(`(?i)^(b0[a-z0-9]{8})`)

// LooksLikeASIN segue a convenção de nomes da organização: ASINs começam com "b0"
func LooksLikeASIN(value string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), "b0")
}

// CampaignASIN extrai o ASIN do nome da campanha. Quando o nome não traz os
// 10 caracteres completos, usa o primeiro token do nome.
func CampaignASIN(campaignName string) string {
	name := strings.TrimSpace(campaignName)
	if match := asinToken.FindString(name); match != "" {
		return strings.ToUpper(match)
	}
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '|'
	})
	if len(fields) == 0 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(fields[0])
}

// ASINTargetExpression monta a expressão de product targeting aceita pelo bulk
func ASINTargetExpression(asin string) string {
	return fmt.Sprintf(`asin="%s"`, strings.ToUpper(strings.TrimSpace(asin)))
}

// IsASINExpression indica uma expressão que mira um ASIN específico
func IsASINExpression(expression string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(expression)), `asin="`)
}
