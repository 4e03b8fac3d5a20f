package api

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/framecore/payload"
)

func TestMsgChannelOrder(t *testing.T) {
	tx, rx := NewMsgChannel()

	const n = 100
	for i := 0; i < n; i++ {
		cmd := AddImage{Key: ImageKey{Namespace: 1, ID: uint32(i)}}
		if err := tx.Send(cmd); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}

	for i := 0; i < n; i++ {
		cmd, err := rx.Recv()
		if err != nil {
			t.Fatalf("Recv(%d): %v", i, err)
		}
		img, ok := cmd.(AddImage)
		if !ok {
			t.Fatalf("Recv(%d) = %T, want AddImage", i, cmd)
		}
		if img.Key.ID != uint32(i) {
			t.Fatalf("Recv(%d) got id %d, commands reordered", i, img.Key.ID)
		}
	}
}

func TestMsgChannelPerSenderOrder(t *testing.T) {
	tx, rx := NewMsgChannel()

	const perSender = 200
	var wg sync.WaitGroup
	for sender := uint32(1); sender <= 2; sender++ {
		wg.Add(1)
		go func(ns uint32) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				cmd := AddImage{Key: ImageKey{Namespace: IDNamespace(ns), ID: uint32(i)}}
				if err := tx.Send(cmd); err != nil {
					t.Errorf("Send: %v", err)
					return
				}
			}
		}(sender)
	}
	wg.Wait()

	lastSeen := map[IDNamespace]int{1: -1, 2: -1}
	for i := 0; i < 2*perSender; i++ {
		cmd, err := rx.Recv()
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		img := cmd.(AddImage)
		if int(img.Key.ID) <= lastSeen[img.Key.Namespace] {
			t.Fatalf("sender %d stream reordered: saw id %d after %d",
				img.Key.Namespace, img.Key.ID, lastSeen[img.Key.Namespace])
		}
		lastSeen[img.Key.Namespace] = int(img.Key.ID)
	}
}

func TestRecvAfterClose(t *testing.T) {
	tx, rx := NewMsgChannel()

	if err := tx.Send(SetRootPipeline{Pipeline: PipelineID{Namespace: 1, ID: 7}}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := tx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The buffered command is still delivered.
	cmd, err := rx.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if _, ok := cmd.(SetRootPipeline); !ok {
		t.Fatalf("Recv = %T, want SetRootPipeline", cmd)
	}

	// After draining, recv reports closure.
	if _, err := rx.Recv(); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("Recv after close = %v, want ErrChannelClosed", err)
	}

	if err := tx.Send(Shutdown{}); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("Send after close = %v, want ErrChannelClosed", err)
	}
}

func TestCloseWakesBlockedRecv(t *testing.T) {
	tx, rx := NewMsgChannel()

	done := make(chan error, 1)
	go func() {
		_, err := rx.Recv()
		done <- err
	}()

	// Give the receiver a moment to block.
	time.Sleep(10 * time.Millisecond)
	if err := tx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, ErrChannelClosed) {
			t.Fatalf("blocked Recv = %v, want ErrChannelClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Recv still blocked after Close")
	}
}

func TestPayloadChannel(t *testing.T) {
	tx, rx := NewPayloadChannel()

	want := payload.Payload{Epoch: 3, DisplayListData: []byte{1, 2}, AuxiliaryListsData: []byte{3}}
	if err := tx.SendPayload(want); err != nil {
		t.Fatalf("SendPayload: %v", err)
	}
	got, err := rx.RecvPayload()
	if err != nil {
		t.Fatalf("RecvPayload: %v", err)
	}
	if got.Epoch != want.Epoch || len(got.DisplayListData) != 2 || len(got.AuxiliaryListsData) != 1 {
		t.Fatalf("RecvPayload = %+v, want %+v", got, want)
	}

	if err := tx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := rx.RecvPayload(); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("RecvPayload after close = %v, want ErrChannelClosed", err)
	}
}
