package flow

import "testing"

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		line string
		want NodeType
	}{
		{"await point", `let data = fetch(url).await;`, NodeAwaitPoint},
		{"await wins over error marker", `let data = fetch(url).await?;`, NodeAwaitPoint},
		{"tokio spawn", `tokio::spawn(async move { work().await });`, NodeSpawnPoint},
		{"thread spawn", `let handle = std::thread::spawn(move || run());`, NodeSpawnPoint},
		{"return", `return Ok(value);`, NodeReturnPoint},
		{"return embedded", `if done { return; }`, NodeReturnPoint},
		{"if branch", `if count > 0 {`, NodeCondition},
		{"match branch", `match state {`, NodeCondition},
		{"for loop", `for item in items {`, NodeLoop},
		{"while loop", `while running {`, NodeLoop},
		{"bare loop", `loop {`, NodeLoop},
		{"state assignment", `self.state = State::Ready;`, NodeStateTransition},
		{"state wins over call shape", `self.state = next_state(event);`, NodeStateTransition},
		{"try operator", `let conn = pool.get()?;`, NodeErrorHandler},
		{"map_err", `value.map_err(Error::from);`, NodeErrorHandler},
		{"unwrap", `let v = maybe.unwrap();`, NodeErrorHandler},
		{"function call", `process(input);`, NodeFunctionCall},
		{"plain statement", `let x = 5;`, NodeStatement},
		{"closing brace", `}`, NodeStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassify_ReturnRequiresWordBoundary(t *testing.T) {
	// A name merely containing "return" must not count as a return point.
	if got := Classify(`let returned_total = compute();`); got == NodeReturnPoint {
		t.Errorf("Classify treated identifier substring as a return point")
	}
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", false},
		{"// a comment", false},
		{"let x = 1;", true},
		{"} // trailing comment", true},
	}
	for _, tt := range tests {
		if got := Qualifies(tt.line); got != tt.want {
			t.Errorf("Qualifies(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
