package workers

import (
	"context"
	"sync"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
)

// EmailMessage - письмо, поставленное в очередь на отправку
type EmailMessage struct {
	To       []string           `json:"to"`
	Subject  string             `json:"subject"`
	Template string             `json:"template"`
	Data     email.TemplateData `json:"data"`
}

// Dispatcher ставит письма в очередь. Dispatch никогда не возвращает ошибку:
// сбой отправки логируется и не влияет на вызвавшую операцию.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg EmailMessage)
	Close() error
}

// PoolDispatcher - очередь в памяти процесса и N горутин-отправителей
type PoolDispatcher struct {
	provider email.Provider
	queue    chan EmailMessage
	wg       sync.WaitGroup
	once     sync.Once
	mu       sync.RWMutex
	closed   bool
}

func NewPoolDispatcher(provider email.Provider, workers, buffer int) *PoolDispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &PoolDispatcher{
		provider: provider,
		queue:    make(chan EmailMessage, buffer),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run(i + 1)
	}
	return d
}

func (d *PoolDispatcher) run(id int) {
	defer d.wg.Done()
	for msg := range d.queue {
		err := send(d.provider, msg)
		if err != nil {
			logger.With("worker_id", id, "template", msg.Template).Error("email send failed", "error", err.Error())
		}
		logger.WorkerLog("email_dispatcher", "send_"+msg.Template, err)
	}
}

func (d *PoolDispatcher) Dispatch(ctx context.Context, msg EmailMessage) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logger.CtxWarn(ctx, "email dispatcher closed, message dropped", "template", msg.Template)
		return
	}
	select {
	case d.queue <- msg:
	default:
		logger.CtxWarn(ctx, "email queue full, message dropped", "template", msg.Template)
	}
}

// Close дожидается отправки уже поставленных писем
func (d *PoolDispatcher) Close() error {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
	return nil
}

func send(provider email.Provider, msg EmailMessage) error {
	if len(msg.To) == 0 {
		return nil
	}
	return provider.SendTemplate(msg.To, msg.Subject, msg.Template, msg.Data)
}

// RecordingDispatcher запоминает письма без отправки. Для тестов.
type RecordingDispatcher struct {
	mu       sync.Mutex
	messages []EmailMessage
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, msg EmailMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
}

func (d *RecordingDispatcher) Close() error { return nil }

func (d *RecordingDispatcher) Messages() []EmailMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]EmailMessage, len(d.messages))
	copy(out, d.messages)
	return out
}
