package searcher

import (
	"isolation/game"
	"isolation/meta"

	"golang.org/x/exp/rand"
)

// decision is a search tree node. wins and visits are kept from the point of
// view of player, the player to move in state.
type decision struct {
	parent        *decision
	move          game.Move // move that led here from parent
	state         *game.GameState
	player        string
	untried       []game.Move
	listed        bool // untried has been computed
	fullyExpanded bool
	children      []*decision
	wins          float64
	visits        int
}

func newDecision(parent *decision, move game.Move, state *game.GameState) *decision {
	return &decision{
		parent: parent,
		move:   move,
		state:  state,
		player: state.CurrentPlayer().ID,
	}
}

// untriedMoves lists the node's legal actions on first use.
func (d *decision) untriedMoves() []game.Move {
	if !d.listed {
		d.listed = true
		if d.state.Phase == game.Playing {
			mover := d.state.CurrentPlayer()
			d.untried = game.GetValidMoves(d.state, mover.ID).Actions(mover.ID, mover.Position)
		}
		d.children = make([]*decision, 0, len(d.untried))
		if len(d.untried) == 0 {
			d.fullyExpanded = true
		}
	}
	return d.untried
}

func (d *decision) isTerminal() bool {
	return len(d.untriedMoves()) == 0 && len(d.children) == 0
}

// expand takes a random untried move and adds the resulting child. A node
// with nothing left to try is returned unchanged.
func (d *decision) expand(rng *rand.Rand) *decision {
	untried := d.untriedMoves()
	if len(untried) == 0 {
		d.fullyExpanded = true
		return d
	}

	i := rng.Intn(len(untried))
	move := untried[i]
	last := len(untried) - 1
	untried[i] = untried[last]
	d.untried = untried[:last]

	state := d.state.SimulationClone()
	state.Advance(move)
	child := newDecision(d, move, state)
	d.children = append(d.children, child)

	if len(d.untried) == 0 {
		d.fullyExpanded = true
	}
	return child
}

// pickChild returns the child with the highest UCB1 score. The first
// unvisited child wins outright; otherwise ties go to the earlier child.
func (d *decision) pickChild(c float64) *decision {
	if len(d.children) == 0 {
		panic("node has no children")
	}
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(c, d.visits)
	var best *decision
	for _, child := range d.children {
		if child.visits == 0 {
			return child
		}
		if best == nil || policy.evaluate(child) > policy.evaluate(best) {
			best = child
		}
	}
	return best
}

func (d *decision) update(result float64) {
	d.visits++
	d.wins += result
}

// findBestMove picks the child to play once the search is over. It panics if
// the node has no children.
func (d *decision) findBestMove(selection meta.FinalMoveSelection) *decision {
	if len(d.children) == 0 {
		panic("node has no children")
	}

	best := d.children[0]
	for _, child := range d.children[1:] {
		switch selection {
		case meta.MaxWinRate:
			if valueForParent(child) > valueForParent(best) {
				best = child
			}
		default:
			if child.visits > best.visits {
				best = child
			}
		}
	}
	return best
}

// Policy maps each expanded move to its share of the root's child visits.
func (d *decision) Policy() map[string]float64 {
	total := 0
	for _, child := range d.children {
		total += child.visits
	}

	policy := make(map[string]float64, len(d.children))
	for _, child := range d.children {
		if total > 0 {
			policy[child.move.Key()] = float64(child.visits) / float64(total)
		} else {
			policy[child.move.Key()] = 0
		}
	}
	return policy
}
