// Package notificacao avisa o time num webhook quando uma negociação é
// ganha. Melhor esforço: falha é logada e não interrompe o fluxo.
package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var cliente = &http.Client{Timeout: 5 * time.Second}

// EnviarAlertaVenda posta o resumo da venda no webhook configurado em
// WEBHOOK_VENDAS_URL. Sem URL configurada, não faz nada.
func EnviarAlertaVenda(closer, lead string, valor float64) {
	url := os.Getenv("WEBHOOK_VENDAS_URL")
	if url == "" {
		return
	}

	payload := map[string]string{
		"mensagem": fmt.Sprintf("Venda fechada: %s ganhou %s (R$ %.2f)", closer, lead, valor),
		"closer":   closer,
		"lead":     lead,
		"valor":    fmt.Sprintf("%.2f", valor),
	}
	body, _ := json.Marshal(payload)

	resp, err := cliente.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook de venda: %v", err)
		return
	}
	defer resp.Body.Close()
}
