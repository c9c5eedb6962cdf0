package usecase

import "strings"

// Tokens reconhecidos nos modelos de mensagem. Substituição simples e
// enumerada, de propósito — não é um motor de templates.
var recognizedTokens = []string{
	"nome_cliente",
	"nome_profissional",
	"data",
	"horario",
	"unidade",
	"servico",
}

// RenderTemplate troca cada {token} pelo valor informado; token sem valor
// vira string vazia.
func RenderTemplate(template string, values map[string]string) string {
	out := template
	for _, token := range recognizedTokens {
		out = strings.ReplaceAll(out, "{"+token+"}", values[token])
	}
	return out
}

// FormatDateBR converte YYYY-MM-DD para DD/MM/YYYY; devolve a entrada
// inalterada quando não está no formato esperado.
func FormatDateBR(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
