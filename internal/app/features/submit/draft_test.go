package submit

import "testing"

func TestDraft_AddUniqueRejectsRepeats(t *testing.T) {
	var d Draft
	if err := d.AddCompetency("Analizar algoritmos"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := d.AddCompetency("analizar ALGORITMOS"); err == nil {
		t.Error("case-insensitive repeat should be rejected")
	}
	if err := d.AddCompetency("   "); err == nil {
		t.Error("blank item should be rejected")
	}
	if len(d.Competencies) != 1 {
		t.Errorf("competencies: got %d, want 1", len(d.Competencies))
	}
}

func TestDraft_AddQuestion(t *testing.T) {
	var d Draft
	if err := d.AddQuestion("¿Qué es un slice?", []string{"vista", "copia", ""}, 0); err != nil {
		t.Fatalf("valid question: %v", err)
	}
	if got := len(d.Questions[0].Options); got != 2 {
		t.Errorf("blank options should be dropped, got %d options", got)
	}
	if err := d.AddQuestion("¿Otra?", []string{"solo una"}, 0); err == nil {
		t.Error("a single option should be rejected")
	}
	if err := d.AddQuestion("¿Otra?", []string{"a", "b"}, 5); err == nil {
		t.Error("out-of-range answer index should be rejected")
	}
}

func TestDraft_RemoveAt(t *testing.T) {
	var d Draft
	_ = d.AddMaterial("Computador")
	_ = d.AddMaterial("Cuaderno")
	d.RemoveAt("materiales", 0)
	if len(d.Materials) != 1 || d.Materials[0] != "Cuaderno" {
		t.Errorf("materials after remove: %v", d.Materials)
	}
	d.RemoveAt("materiales", 10) // out of range, ignored
	if len(d.Materials) != 1 {
		t.Errorf("out-of-range remove changed the list: %v", d.Materials)
	}
}

func TestDrafts_Lifecycle(t *testing.T) {
	ds := NewDrafts()
	id := ds.Create()

	err := ds.With(id, func(d *Draft) error {
		return d.AddCompetency("Modelar datos")
	})
	if err != nil {
		t.Fatal(err)
	}

	snap, ok := ds.Snapshot(id)
	if !ok || len(snap.Competencies) != 1 {
		t.Fatalf("snapshot: ok=%v comps=%v", ok, snap.Competencies)
	}

	// Snapshots are copies.
	snap.Competencies[0] = "mutado"
	again, _ := ds.Snapshot(id)
	if again.Competencies[0] != "Modelar datos" {
		t.Error("mutating a snapshot leaked into the draft")
	}

	ds.Drop(id)
	if err := ds.With(id, func(*Draft) error { return nil }); err != ErrDraftNotFound {
		t.Errorf("after drop: got %v, want ErrDraftNotFound", err)
	}
}
