package shelf

import (
	"errors"
	"testing"

	"github.com/TheBitDrifter/table"
)

// TestStorageLocking tests the lock bits and deferred creation
func TestStorageLocking(t *testing.T) {
	tests := []struct {
		name      string
		lockBits  []uint32
		unlockIdx int    // Index of bit to unlock for midway test
		checks    []bool // Expected lock state at each check
	}{
		{
			name:      "Single lock",
			lockBits:  []uint32{1},
			unlockIdx: 0,
			checks:    []bool{true, false},
		},
		{
			name:      "Multiple locks",
			lockBits:  []uint32{1, 2, 3},
			unlockIdx: 1,
			checks:    []bool{true, true, false}, // Still locked after removing one lock
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, posComp)

			for _, bit := range tt.lockBits {
				w.AddLock(bit)
			}
			if w.Locked() != tt.checks[0] {
				t.Errorf("Initial lock state: %v, want %v", w.Locked(), tt.checks[0])
			}

			// Direct creation is refused, queued creation is accepted
			var locked LockedStorageError
			if err := w.CreateEntity().WithComponent(Position{}).Err(); !errors.As(err, &locked) {
				t.Errorf("CreateEntity() while locked error = %v, want LockedStorageError", err)
			}
			for i := 0; i < 5; i++ {
				if err := w.EnqueueNewEntity(Position{X: float64(i)}); err != nil {
					t.Fatalf("EnqueueNewEntity failed: %v", err)
				}
			}

			if err := w.RemoveLock(tt.lockBits[tt.unlockIdx]); err != nil {
				t.Fatalf("RemoveLock() error = %v", err)
			}
			if w.Locked() != tt.checks[1] {
				t.Errorf("Mid-operation lock state: %v, want %v", w.Locked(), tt.checks[1])
			}

			for i, bit := range tt.lockBits {
				if i != tt.unlockIdx {
					if err := w.RemoveLock(bit); err != nil {
						t.Fatalf("RemoveLock() error = %v", err)
					}
				}
			}
			if w.Locked() != tt.checks[len(tt.checks)-1] {
				t.Errorf("Final lock state: %v, want %v", w.Locked(), tt.checks[len(tt.checks)-1])
			}

			count, _ := w.Query().WithComponent(posComp).Count()
			if count != 5 {
				t.Errorf("Entity count after unlocking: %d, want 5", count)
			}
		})
	}
}

func TestLockedStructuralOperations(t *testing.T) {
	w := newTestWorld(t, posComp, velComp)
	entity, _ := w.CreateEntity().WithComponent(Position{}).Build()
	w.AddLock(0)

	var locked LockedStorageError
	checks := map[string]error{
		"AddComponentByEntityID":    w.AddComponentByEntityID(Velocity{}, entity.Index()),
		"DeleteComponentByEntityID": w.DeleteComponentByEntityID(posComp, entity.Index()),
		"DeleteEntityByID":          w.DeleteEntityByID(entity.Index()),
		"DestroyEntity":             w.DestroyEntity(entity),
	}
	for name, err := range checks {
		if !errors.As(err, &locked) {
			t.Errorf("%s error = %v, want LockedStorageError", name, err)
		}
	}
	if !w.Alive(entity) {
		t.Errorf("entity changed while locked")
	}

	// Reads stay available
	if n, err := w.Query().WithComponent(posComp).Count(); err != nil || n != 1 {
		t.Errorf("Count() = %d, %v while locked", n, err)
	}
}

func TestEnqueuedOperations(t *testing.T) {
	w := newTestWorld(t, posComp, velComp)
	a, _ := w.CreateEntity().WithComponent(Position{X: 1}).Build()
	b, _ := w.CreateEntity().WithComponent(Position{X: 2}).WithComponent(Velocity{}).Build()
	c, _ := w.CreateEntity().WithComponent(Position{X: 3}).Build()

	w.AddLock(0)
	steps := []error{
		w.EnqueueAddComponent(a, Velocity{X: 10}),
		w.EnqueueRemoveComponent(b, velComp),
		w.EnqueueAddComponent(c, Velocity{X: 30}),
		w.EnqueueDestroyEntity(c),
		w.EnqueueDestroyEntity(c),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}
	if n, _ := w.Query().WithComponent(velComp).Count(); n != 1 {
		t.Errorf("queued ops applied early: %d velocity entities", n)
	}

	if err := w.RemoveLock(0); err != nil {
		t.Fatalf("RemoveLock() error = %v", err)
	}

	result := runQuery(t, w.Query().WithComponent(velComp))
	if len(result.Indexes) != 1 || result.Indexes[0] != a.Index() {
		t.Fatalf("velocity entities = %v, want [%d]", result.Indexes, a.Index())
	}
	if got := cellValues(t, velComp, result); got[0].X != 10 {
		t.Errorf("Velocity.X = %v, want 10", got[0].X)
	}
	if w.Alive(c) {
		t.Errorf("queued destroy was not applied")
	}
	if !w.Alive(b) {
		t.Errorf("b should survive with position only")
	}
}

func TestEnqueuedOpsSkipRecycledEntities(t *testing.T) {
	w := newTestWorld(t, posComp, velComp)
	old, _ := w.CreateEntity().WithComponent(Position{}).Build()

	w.AddLock(0)
	if err := w.EnqueueAddComponent(old, Velocity{X: 1}); err != nil {
		t.Fatalf("EnqueueAddComponent() error = %v", err)
	}
	w.RemoveLock(0)

	if err := w.DeleteEntityByID(old.Index()); err != nil {
		t.Fatalf("DeleteEntityByID() error = %v", err)
	}
	newer, _ := w.CreateEntity().WithComponent(Position{}).Build()

	w.AddLock(0)
	if err := w.EnqueueRemoveComponent(old, posComp); err != nil {
		t.Fatalf("EnqueueRemoveComponent() error = %v", err)
	}
	if err := w.RemoveLock(0); err != nil {
		t.Fatalf("RemoveLock() error = %v", err)
	}

	if got, _ := w.Mask(newer.Index()); got != maskOf(0) {
		t.Errorf("newer entity mask = %v, want only position", got)
	}

	var stale StaleEntityError
	if err := w.EnqueueDestroyEntity(old); !errors.As(err, &stale) {
		t.Errorf("EnqueueDestroyEntity(old) error = %v, want StaleEntityError", err)
	}
}

func TestEnqueueRejectsUnregistered(t *testing.T) {
	w := newTestWorld(t, posComp)
	e, _ := w.CreateEntity().WithComponent(Position{}).Build()
	w.AddLock(3)
	defer w.RemoveLock(3)

	var notRegistered ComponentNotRegisteredError
	if err := w.EnqueueNewEntity(Position{}, Health{}); !errors.As(err, &notRegistered) {
		t.Errorf("EnqueueNewEntity error = %v, want ComponentNotRegisteredError", err)
	}
	if err := w.EnqueueAddComponent(e, Velocity{}); !errors.As(err, &notRegistered) {
		t.Errorf("EnqueueAddComponent error = %v, want ComponentNotRegisteredError", err)
	}
	if err := w.EnqueueRemoveComponent(e, velComp); !errors.As(err, &notRegistered) {
		t.Errorf("EnqueueRemoveComponent error = %v, want ComponentNotRegisteredError", err)
	}
}

func TestSlotCapacityConfig(t *testing.T) {
	defer Config.SetSlotCapacity(0)
	Config.SetSlotCapacity(64)

	sto := newStorage(table.Factory.NewSchema())
	if cap(sto.masks) != 64 || cap(sto.gens) != 64 {
		t.Errorf("capacities = %d/%d, want 64", cap(sto.masks), cap(sto.gens))
	}
	if len(sto.masks) != 0 {
		t.Errorf("preallocation created %d slots", len(sto.masks))
	}

	Config.SetSlotCapacity(-5)
	if Config.slotCapacity != 0 {
		t.Errorf("negative capacity stored as %d", Config.slotCapacity)
	}
}

func TestLockBitOutOfRange(t *testing.T) {
	w := newTestWorld(t, posComp)
	bit := uint32(MaxComponentTypes)

	var outOfRange LockBitOutOfRangeError
	if err := w.AddLock(bit); !errors.As(err, &outOfRange) {
		t.Errorf("AddLock(%d) error = %v, want LockBitOutOfRangeError", bit, err)
	}
	if err := w.RemoveLock(bit); !errors.As(err, &outOfRange) {
		t.Errorf("RemoveLock(%d) error = %v, want LockBitOutOfRangeError", bit, err)
	}
	if w.Locked() {
		t.Errorf("out of range bit locked the world")
	}
	if err := w.AddLock(bit - 1); err != nil {
		t.Errorf("AddLock(%d) error = %v", bit-1, err)
	}
	if err := w.RemoveLock(bit - 1); err != nil {
		t.Errorf("RemoveLock(%d) error = %v", bit-1, err)
	}
}
