package http

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/application/sales"
)

var _ sales.SaleNotifier = (*SaleHub)(nil)

// SaleHub empurra mudanças de estado de venda para os clientes conectados
// em /ws/sales/:id. O PDV abre o canal depois de criar uma venda Pix e
// fecha quando o pagamento confirma; cada venda tem seu próprio conjunto de
// inscritos. O envio nunca bloqueia: inscrito com buffer cheio perde o
// evento (o cliente ainda pode consultar GET /api/sales/:id).
type SaleHub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{} // saleID -> inscritos
	logger zerolog.Logger
}

type subscriber struct {
	send chan dto.SaleStatusDTO
}

// NewSaleHub constrói o hub.
func NewSaleHub(logger zerolog.Logger) *SaleHub {
	return &SaleHub{
		subs:   make(map[string]map[*subscriber]struct{}),
		logger: logger,
	}
}

// NotifySaleStatus publica a mudança de estado para os inscritos da venda.
func (h *SaleHub) NotifySaleStatus(saleID, status string) {
	msg := dto.SaleStatusDTO{ID: saleID, Status: status}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[saleID] {
		select {
		case sub.send <- msg:
		default:
			// Buffer cheio: descarta em vez de segurar o webhook.
		}
	}
}

func (h *SaleHub) subscribe(saleID string) *subscriber {
	sub := &subscriber{send: make(chan dto.SaleStatusDTO, 8)}
	h.mu.Lock()
	if h.subs[saleID] == nil {
		h.subs[saleID] = make(map[*subscriber]struct{})
	}
	h.subs[saleID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *SaleHub) unsubscribe(saleID string, sub *subscriber) {
	h.mu.Lock()
	if set := h.subs[saleID]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, saleID)
		}
	}
	h.mu.Unlock()
	close(sub.send)
}

// UpgradeRequired recusa requisições que não pedem upgrade de websocket.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler devolve o handler websocket de /ws/sales/:id: registra a conexão
// no hub e escreve cada evento até o cliente fechar.
func (h *SaleHub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		saleID := conn.Params("id")
		if saleID == "" {
			_ = conn.Close()
			return
		}
		sub := h.subscribe(saleID)
		defer h.unsubscribe(saleID, sub)

		// Leitor só para detectar o fechamento do cliente.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg := <-sub.send:
				if err := conn.WriteJSON(msg); err != nil {
					h.logger.Debug().Err(err).Str("sale_id", saleID).Msg("conexão websocket encerrada na escrita")
					return
				}
			case <-done:
				return
			}
		}
	})
}
