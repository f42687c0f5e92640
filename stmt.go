package main

import (
	"fmt"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  We do this to
// hide the AVL interface from the interpreter code.  The tree is
// keyed by line number, so an in-order walk is a LIST
//

func (pg *program) firstLine() *programLine {

	p := avl.AvlTreeFirstInOrder(pg.root)
	if p != nil {
		return p.(*programLine)
	} else {
		return nil
	}
}

func (pg *program) lastLine() *programLine {

	p := avl.AvlTreeLastInOrder(pg.root)
	if p != nil {
		return p.(*programLine)
	} else {
		return nil
	}
}

func (pg *program) nextLine(pl *programLine) *programLine {

	p := avl.AvlTreeNextInOrder(&pl.avl)
	if p != nil {
		return p.(*programLine)
	} else {
		return nil
	}
}

func (pg *program) lookupLine(lineNo int) *programLine {

	p := avl.AvlTreeLookup(pg.root, lineNo, cmpLineKey)
	if p != nil {
		return p.(*programLine)
	} else {
		return nil
	}
}

//
// Insert a line, replacing any line already stored under the same
// number
//

func (pg *program) insertLine(pl *programLine) {

	if old := pg.lookupLine(pl.lineNo); old != nil {
		pg.removeLine(old)
	}

	p := avl.AvlTreeInsert(&pg.root, &pl.avl, pl, cmpLineNode)
	if p != nil {
		fatalError(fmt.Sprintf("Line %d already in tree???", pl.lineNo))
	}

	pg.count++
}

func (pg *program) removeLine(pl *programLine) {

	avl.AvlTreeRemove(&pg.root, &pl.avl)

	pg.count--
}

//
// Tricky: dropping the root is enough, the nodes are garbage once
// nothing points at them
//

func (pg *program) clear() {

	pg.root = nil
	pg.count = 0
}

func cmpLineKey(key any, node any) int {

	return cmpLineItems(key.(int), node.(*programLine).lineNo)
}

func cmpLineNode(node1, node2 any) int {

	return cmpLineItems(node1.(*programLine).lineNo, node2.(*programLine).lineNo)
}

func cmpLineItems(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}
