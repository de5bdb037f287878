/*
Package widgets provides the small set of terminal rendering primitives that
back the registry's built-in component descriptors and the fallback/error
cards (container.Container implementations render through these, not
through a browser DOM).

The individual leaf widgets a real host application would ship (forms,
menus, tabs, and the rest of a full component library) are out of scope
here; this package only carries what the detector/registry pipeline needs
to be exercisable end to end:

  - Card: fallback cards, error cards, and the alert/choice/confirm
    built-ins render through it.
  - Table: backs the table-plus built-in.
  - Accordion: backs the list-detector's accordion built-in.
  - Box/Container: layout primitives used by Card and Accordion.

Theming follows the reactive package's Provide/Inject convention: a Theme
value provided under the key "theme" is injected by every widget that
needs one, falling back to DefaultTheme.
*/
package widgets
