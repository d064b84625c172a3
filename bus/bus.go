// Package bus is a small in-process topic bus. The simulated SoC publishes
// pin and UART activity on it so front ends can watch the hardware without
// polling registers.
package bus

import "sync"

// Topic is a path of comparable tokens, normally strings and ints.
// In subscriptions "+" matches one level and a trailing "#" matches the rest.
type Topic []any

// T builds a topic from its tokens.
func T(tokens ...any) Topic { return Topic(tokens) }

const (
	wildOne  = "+"
	wildRest = "#"
)

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

type Subscription struct {
	topic Topic
	ch    chan *Message
	bus   *Bus
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.bus.unsubscribe(s) }

type node struct {
	children map[any]*node
	subs     []*Subscription
	retained *Message
}

func (n *node) child(tok any, create bool) *node {
	if c, ok := n.children[tok]; ok || !create {
		return c
	}
	if n.children == nil {
		n.children = make(map[any]*node)
	}
	c := &node{}
	n.children[tok] = c
	return c
}

type Bus struct {
	mu   sync.Mutex
	root *node
	qLen int
}

// New creates a bus whose subscriptions buffer queueLen messages. A full
// queue drops its oldest message.
func New(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{root: &node{}, qLen: queueLen}
}

// Subscribe registers interest in topic and replays matching retained
// messages into the new subscription.
func (b *Bus) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan *Message, b.qLen), bus: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.root
	for _, tok := range topic {
		n = n.child(tok, true)
	}
	n.subs = append(n.subs, sub)

	collectRetained(b.root, topic, func(m *Message) { deliver(sub, m) })
	return sub
}

// Publish delivers payload to every matching subscription. A retained
// message is kept for later subscribers; a retained nil payload clears it.
func (b *Bus) Publish(topic Topic, payload any, retained bool) {
	msg := &Message{Topic: topic, Payload: payload, Retained: retained}

	b.mu.Lock()
	defer b.mu.Unlock()
	matchSubs(b.root, topic, func(s *Subscription) { deliver(s, msg) })

	if !retained {
		return
	}
	n := b.root
	for _, tok := range topic {
		n = n.child(tok, true)
	}
	if payload == nil {
		n.retained = nil
	} else {
		n.retained = msg
	}
}

func deliver(s *Subscription, m *Message) {
	select {
	case s.ch <- m:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- m:
		default:
		}
	}
}

// matchSubs visits subscriptions whose pattern matches the concrete topic.
func matchSubs(n *node, topic Topic, visit func(*Subscription)) {
	if n == nil {
		return
	}
	if c := n.children[wildRest]; c != nil {
		for _, s := range c.subs {
			visit(s)
		}
	}
	if len(topic) == 0 {
		for _, s := range n.subs {
			visit(s)
		}
		return
	}
	matchSubs(n.children[topic[0]], topic[1:], visit)
	matchSubs(n.children[wildOne], topic[1:], visit)
}

// collectRetained visits retained messages whose topic matches pattern.
func collectRetained(n *node, pattern Topic, visit func(*Message)) {
	if n == nil {
		return
	}
	if len(pattern) == 0 {
		if n.retained != nil {
			visit(n.retained)
		}
		return
	}
	switch pattern[0] {
	case wildRest:
		walkRetained(n, visit)
	case wildOne:
		for _, c := range n.children {
			collectRetained(c, pattern[1:], visit)
		}
	default:
		collectRetained(n.children[pattern[0]], pattern[1:], visit)
	}
}

func walkRetained(n *node, visit func(*Message)) {
	if n.retained != nil {
		visit(n.retained)
	}
	for _, c := range n.children {
		walkRetained(c, visit)
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	stack := make([]*node, 0, len(sub.topic))
	for _, tok := range sub.topic {
		c := n.child(tok, false)
		if c == nil {
			return
		}
		stack = append(stack, n)
		n = c
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			close(sub.ch)
			break
		}
	}

	// Prune empty nodes.
	for i := len(sub.topic) - 1; i >= 0; i-- {
		parent, key := stack[i], sub.topic[i]
		c := parent.children[key]
		if len(c.subs) != 0 || len(c.children) != 0 || c.retained != nil {
			break
		}
		delete(parent.children, key)
	}
}
