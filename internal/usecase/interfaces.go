package usecase

import "context"

// MessageSender é o provedor de mensagens de saída (WhatsApp).
type MessageSender interface {
	SendText(ctx context.Context, phone, message string) error
}

// TriggerRegistry é o registro externo de jobs recorrentes. A variante
// automática da sincronização desativa o próprio gatilho quando o backlog
// se esgota.
type TriggerRegistry interface {
	DisableJob(ctx context.Context, name string) error
}
